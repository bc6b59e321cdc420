package markdown

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Title picks a page title for a document: the text of a level-1 heading on the very first line,
// or else the file name without its extension.
func Title(path string, body []byte) string {
	firstLine, _, _ := bytes.Cut(body, []byte("\n"))
	line := strings.TrimSpace(strings.TrimPrefix(string(firstLine), "\ufeff"))

	if heading, ok := strings.CutPrefix(line, "# "); ok {
		if title := strings.TrimSpace(heading); title != "" {
			return title
		}
	}

	return TitleFromPath(path)
}

// TitleFromPath is the base name of path, minus extension: docs/release-notes.md -> release-notes.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
