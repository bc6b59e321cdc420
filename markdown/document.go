package markdown

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// Document is one local Markdown file, ready to be published.
type Document struct {
	// Where it was read from.
	Path string

	// The file as it is on disk.
	Source []byte

	// Source minus any front matter block.
	Body []byte

	Title string

	// Body rendered to storage format.
	HTML string
}

// Load reads path once and derives everything a sync needs from that single read.
func Load(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markdown: couldn't read file %s: %w", path, err)
	}

	return Parse(path, source)
}

// Parse is Load without the file system.  A front matter `title:` beats the first-line heading.
//
// A leading block only counts as front matter if it decodes to a non-empty mapping.  Anything else,
// such as a document opening with a `---` rule, is left in the body and rendered.
func Parse(path string, source []byte) (*Document, error) {
	body, meta := splitFrontMatter(source)

	html, err := Render(body)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", path, err)
	}

	title, _ := meta["title"].(string)
	title = strings.TrimSpace(title)
	if title == "" {
		title = Title(path, body)
	}

	return &Document{
		Path:   path,
		Source: source,
		Body:   body,
		Title:  title,
		HTML:   html,
	}, nil
}

func splitFrontMatter(source []byte) ([]byte, map[string]any) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil || len(meta) == 0 {
		return source, nil
	}

	// a blank line usually separates the front matter from the document proper
	return bytes.TrimLeft(body, "\r\n"), meta
}
