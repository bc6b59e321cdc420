package markdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	html, err := Render([]byte("# Release Notes\n\nHello **world**."))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Release Notes</h1>\n<p>Hello <strong>world</strong>.</p>", html)
}

func TestRenderGitHubFlavoured(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~ and https://example.com\n\n---\n\n```go\nfmt.Println(1)\n```\n"

	html, err := Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>1</td>")
	assert.Contains(t, html, "<del>gone</del>")
	assert.Contains(t, html, `<a href="https://example.com">https://example.com</a>`)
	assert.Contains(t, html, "<hr />")
	assert.Contains(t, html, `<pre><code class="language-go">`)
}

func TestTitle(t *testing.T) {
	cases := []struct {
		name string
		path string
		body string
		want string
	}{
		{"heading", "docs/notes.md", "# My Title\n\nbody", "My Title"},
		{"heading with padding", "notes.md", "  #   Spaced Out   \r\nbody", "Spaced Out"},
		{"no heading", "docs/release-notes.md", "just text\n# Later", "release-notes"},
		{"second level heading", "guide.md", "## Not a title", "guide"},
		{"no space after marker", "hash.md", "#NotAHeading", "hash"},
		{"empty heading", "empty.md", "# \nbody", "empty"},
		{"empty file", "blank.md", "", "blank"},
		{"byte order mark", "bom.md", "\ufeff# With BOM\n", "With BOM"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Title(tc.path, []byte(tc.body)))
		})
	}
}

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "README", TitleFromPath("/a/b/README.md"))
	assert.Equal(t, "archive.tar", TitleFromPath("archive.tar.md"))
	assert.Equal(t, "noext", TitleFromPath("noext"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Release Notes\n\nHello **world**."), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "Release Notes", doc.Title)
	assert.Equal(t, "<h1>Release Notes</h1>\n<p>Hello <strong>world</strong>.</p>", doc.HTML)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}

func TestParseFrontMatter(t *testing.T) {
	doc, err := Parse("page.md", []byte("---\ntitle: From Front Matter\ntags: [a]\n---\n# Heading\n\nBody\n"))
	require.NoError(t, err)

	assert.Equal(t, "From Front Matter", doc.Title)
	assert.Equal(t, "<h1>Heading</h1>\n<p>Body</p>", doc.HTML)
	assert.NotContains(t, doc.HTML, "tags")

	doc, err = Parse("page.md", []byte("---\nauthor: someone\n---\n# Heading\n"))
	require.NoError(t, err)
	assert.Equal(t, "Heading", doc.Title)
}

func TestParseLeadingRuleIsNotFrontMatter(t *testing.T) {
	src := "---\n\nSection one\n\n---\n\nSection two\n"

	doc, err := Parse("docs/sections.md", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "sections", doc.Title)
	assert.Equal(t, src, string(doc.Body))
	assert.Contains(t, doc.HTML, "<p>Section one</p>")
	assert.Contains(t, doc.HTML, "<p>Section two</p>")
	assert.Contains(t, doc.HTML, "<hr />")

	doc, err = Parse("intro.md", []byte("---\nIntro text, written by hand.\n\n---\n\n# Heading\n"))
	require.NoError(t, err)
	assert.Equal(t, "intro", doc.Title)
	assert.Contains(t, doc.HTML, "Intro text, written by hand.")
	assert.Contains(t, doc.HTML, "<h1>Heading</h1>")
}
