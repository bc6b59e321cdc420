package markdown

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// FromStorage converts a page body in storage format back to Markdown.  Relative links are made
// absolute against base, which may be nil.
func FromStorage(storage string, base *url.URL) (string, error) {
	domain := ""
	scheme := "https"
	if base != nil {
		domain = base.Host
		if base.Scheme != "" {
			scheme = base.Scheme
		}
	}

	// md.NewConverter only takes a host name, not a base URI, so we need our own
	// GetAbsoluteURL to keep the scheme right.  See
	// https://github.com/JohannesKaufmann/html-to-markdown/issues/44
	opt := &md.Options{
		GetAbsoluteURL: func(_ *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				return rawURL
			}

			// inline images and the like
			if u.Scheme == "data" {
				return rawURL
			}

			if u.Scheme == "" {
				u.Scheme = scheme
			}
			if u.Host == "" {
				u.Host = domain
			}

			return u.String()
		},
	}

	converter := md.NewConverter(domain, true, opt)
	converter.Use(mdplugin.GitHubFlavored())

	out, err := converter.ConvertString(storage)
	if err != nil {
		return "", fmt.Errorf("markdown: failed to convert to Markdown: %w", err)
	}

	return strings.TrimSpace(out), nil
}
