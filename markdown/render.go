// Package markdown turns local Markdown files into what Confluence wants to store: a title and a
// body in storage format (XHTML).
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// GitHub flavoured Markdown knows about tables, strikethrough, autolinks and task lists.  Storage
// format is XHTML, so void elements need to be self-closing.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
		html.WithXHTML(),
	),
)

// Render converts a Markdown body to storage-format HTML.
func Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown: couldn't render: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
