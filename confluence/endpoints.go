package confluence

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// getPageByIDEndpoint returns the (v2) API endpoint to download one page:
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-id-get
func (a *API) getPageByIDEndpoint(opts GetPageByIDQuery) (*url.URL, error) {
	if opts.ID < 1 {
		return nil, fmt.Errorf("confluence: please provide ID to get page by ID")
	}

	return a.endpointWithQuery(fmt.Sprintf("api/v2/pages/%d", opts.ID), opts)
}

// getPagesEndpoint returns the (v2) API endpoint to list pages
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-get
func (a *API) getPagesEndpoint(opts GetPagesQuery) (*url.URL, error) {
	return a.endpointWithQuery("api/v2/pages", opts)
}

// createPageEndpoint returns the (v2) API endpoint to create a page
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-post
func (a *API) createPageEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("api/v2/pages")
}

// updatePageEndpoint returns the (v2) API endpoint to replace one page
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-id-put
func (a *API) updatePageEndpoint(id string) (*url.URL, error) {
	if id == "" {
		return nil, fmt.Errorf("confluence: please provide ID to update page")
	}

	return a.resolveEndpoint(fmt.Sprintf("api/v2/pages/%s", url.PathEscape(id)))
}

// pagePropertiesEndpoint returns the (v2) API endpoint for a page's content properties
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-content-properties/#api-pages-page-id-properties-post
func (a *API) pagePropertiesEndpoint(id string) (*url.URL, error) {
	if id == "" {
		return nil, fmt.Errorf("confluence: please provide page ID to set a property")
	}

	return a.resolveEndpoint(fmt.Sprintf("api/v2/pages/%s/properties", url.PathEscape(id)))
}

// getSpaceEndpoint returns the (v2) API endpoint to list spaces
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-space/#api-spaces-get
func (a *API) getSpaceEndpoint(opts SpacesQuery) (*url.URL, error) {
	return a.endpointWithQuery("api/v2/spaces", opts)
}

// getCurrentUserEndpoint returns the (v1) API endpoint to query current user
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-current-get
//
// This API is supported.
func (a *API) getCurrentUserEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("rest/api/user/current")
}

func (a *API) endpointWithQuery(endpoint string, opts any) (*url.URL, error) {
	ep, err := a.resolveEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.  Endpoints
// are relative paths, so a base URI below a path prefix (a proxy, say) keeps that prefix.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	if a.BaseURI == nil {
		return nil, fmt.Errorf("confluence: API has no base URI, use NewAPI")
	}

	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("confluence: failed to parse endpoint ref: %w", err)
	}
	if ref.IsAbs() || strings.HasPrefix(ref.Path, "/") {
		return nil, fmt.Errorf("confluence: endpoint %q must be relative to the wiki root", endpoint)
	}

	base := *a.BaseURI
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		base.RawPath = ""
	}

	return base.ResolveReference(ref), nil
}
