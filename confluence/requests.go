package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (api *API) GetPageByID(ctx context.Context, opts GetPageByIDQuery) (*Page, error) {
	ep, err := api.getPageByIDEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get single page endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var page Page

	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &page, nil
}

func (api *API) GetPages(ctx context.Context, opts GetPagesQuery) (*MultiPageResponse, error) {
	ep, err := api.getPagesEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get pages endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var pageList MultiPageResponse

	if err := json.Unmarshal(body, &pageList); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &pageList, nil
}

// CreatePage creates a page and returns it as Confluence echoes it back, including _links.webui.
func (api *API) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if req.SpaceID == "" || req.Title == "" {
		return nil, fmt.Errorf("confluence: a new page needs both a space ID and a title")
	}

	ep, err := api.createPageEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get create page endpoint: %w", err)
	}

	body, err := api.send(ctx, http.MethodPost, ep, req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't create page '%s': %w", req.Title, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &page, nil
}

// UpdatePage replaces title and body of an existing page.  req.Version.Number has to be exactly one
// more than the version currently on the server, or Confluence answers 409.
func (api *API) UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	ep, err := api.updatePageEndpoint(req.ID)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get update page endpoint: %w", err)
	}

	body, err := api.send(ctx, http.MethodPut, ep, req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't update page %s: %w", req.ID, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &page, nil
}

func (api *API) CreatePageProperty(ctx context.Context, pageID string, prop ContentProperty) (*ContentProperty, error) {
	ep, err := api.pagePropertiesEndpoint(pageID)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get page properties endpoint: %w", err)
	}

	body, err := api.send(ctx, http.MethodPost, ep, prop)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't set property '%s' on page %s: %w", prop.Key, pageID, err)
	}

	var created ContentProperty
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &created, nil
}

func (api *API) getSpaces(ctx context.Context, opts SpacesQuery) (*AllSpaces, error) {
	ep, err := api.getSpaceEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get spaces endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	var allSpaces AllSpaces

	if err := json.Unmarshal(body, &allSpaces); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &allSpaces, nil
}

// CurrentUser return current user information
func (api *API) CurrentUser(ctx context.Context) (*User, error) {
	ep, err := api.getCurrentUserEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get current user endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse json response: %w", err)
	}

	return &user, nil
}

// request performs a GET
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	return api.do(ctx, http.MethodGet, url, nil)
}

// send JSON-encodes payload and performs the request with it as the body.
func (api *API) send(ctx context.Context, method string, url *url.URL, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode request body: %w", err)
	}
	return api.do(ctx, method, url, encoded)
}

func (api *API) do(ctx context.Context, method string, url *url.URL, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// if user & token are not set, do not add authorization header
	if api.username != "" && api.token != "" {
		req.SetBasicAuth(api.username, api.token)
	} else if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't read http response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusPartialContent, http.StatusNoContent, http.StatusResetContent:
		return body, nil
	}

	return nil, &StatusError{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Method:     method,
		URL:        url.String(),
	}
}
