package confluence

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func NewAPI(instance string, username string, token string) (*API, error) {

	if instance == "" {
		return &API{}, fmt.Errorf("confluence: configure your Confluence instance name with --confluence-instance or INPUT_CLOUD")
	}
	if username == "" {
		return &API{}, fmt.Errorf("confluence: configure your Confluence username with --auth-username or INPUT_USER")
	}
	if token == "" {
		return &API{}, fmt.Errorf("confluence: auth token is empty, please set INPUT_TOKEN or check auth-token-cmd")
	}

	u, err := url.ParseRequestURI(
		fmt.Sprintf("https://%s.atlassian.net/wiki",
			instance,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI:  u,
		token:    token,
		username: username,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Wiki root, e.g. https://INSTANCE.atlassian.net/wiki.  Links to pages are built by appending
	// the _links.webui path returned by the API.
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Auth info
	username, token string
}

// SetBaseURI points the API at a different wiki root, e.g. a proxy or a test server.  The path
// should end in /wiki.
func (a *API) SetBaseURI(raw string) error {
	u, err := url.ParseRequestURI(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return fmt.Errorf("confluence: couldn't parse base URL %q: %w", raw, err)
	}
	a.BaseURI = u
	return nil
}

// WebURL turns a _links.webui path into an absolute link a human can click.
func (a *API) WebURL(webUI string) string {
	return a.BaseURI.String() + webUI
}
