package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePage(t *testing.T) {
	var got CreatePageRequest
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wiki/api/v2/pages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "me@example.com", user)
		assert.Equal(t, "s3cret", pass)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Write([]byte(`{"id":"123","title":"Release Notes","_links":{"webui":"/spaces/DOCS/pages/123/Release+Notes"}}`))
	}))

	page, err := api.CreatePage(context.Background(), CreatePageRequest{
		SpaceID:  "42",
		Status:   StatusCurrent,
		Title:    "Release Notes",
		ParentID: "7",
		Body:     Storage{Representation: RepresentationStorage, Value: "<p>hi</p>"},
	})
	require.NoError(t, err)

	assert.Equal(t, "123", page.ID)
	assert.Equal(t, "/spaces/DOCS/pages/123/Release+Notes", page.Links.WebUI)
	assert.Equal(t, "42", got.SpaceID)
	assert.Equal(t, "7", got.ParentID)
	assert.Equal(t, "current", got.Status)
	assert.Equal(t, "storage", got.Body.Representation)
	assert.Equal(t, "<p>hi</p>", got.Body.Value)
}

func TestCreatePageValidates(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := api.CreatePage(context.Background(), CreatePageRequest{Title: "no space"})
	assert.Error(t, err)
}

func TestCreatePageForbidden(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := api.CreatePage(context.Background(), CreatePageRequest{SpaceID: "1", Title: "x"})
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, http.MethodPost, se.Method)

	code, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, 403, code)
}

func TestUpdatePage(t *testing.T) {
	var got UpdatePageRequest
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wiki/api/v2/pages/123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"id":"123","version":{"number":4},"_links":{"webui":"/spaces/DOCS/pages/123"}}`))
	}))

	page, err := api.UpdatePage(context.Background(), UpdatePageRequest{
		ID:      "123",
		Status:  StatusCurrent,
		Title:   "Release Notes",
		Body:    Storage{Representation: RepresentationStorage, Value: "<p>new</p>"},
		Version: VersionUpdate{Number: 4, Message: "synced"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Version.Number)
	assert.Equal(t, 4, got.Version.Number)
	assert.Equal(t, "synced", got.Version.Message)
	assert.Equal(t, "123", got.ID)
}

func TestUpdatePageConflict(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	_, err := api.UpdatePage(context.Background(), UpdatePageRequest{ID: "1", Version: VersionUpdate{Number: 2}})
	code, ok := StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, err.Error(), "conflict")
}

func TestCreatePageProperty(t *testing.T) {
	var got ContentProperty
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/api/v2/pages/123/properties", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"9","key":"content-appearance-published","value":"full-width"}`))
	}))

	prop, err := api.CreatePageProperty(context.Background(), "123", ContentProperty{
		Key:   AppearancePublishedKey,
		Value: AppearanceFullWidth,
	})
	require.NoError(t, err)
	assert.Equal(t, "9", prop.ID)
	assert.Equal(t, "content-appearance-published", got.Key)
	assert.Equal(t, "full-width", got.Value)
}

func TestStatusCodeTransportError(t *testing.T) {
	_, ok := StatusCode(errors.New("dial tcp: connection refused"))
	assert.False(t, ok)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// brokenBody fails every read and remembers whether it was closed.
type brokenBody struct{ closed bool }

func (b *brokenBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
func (b *brokenBody) Close() error             { b.closed = true; return nil }

func TestRequestClosesBodyWhenReadFails(t *testing.T) {
	body := &brokenBody{}

	api, err := NewAPI("example", "me@example.com", "s3cret")
	require.NoError(t, err)
	api.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: body, Request: r}, nil
	})}

	_, err = api.GetPages(context.Background(), GetPagesQuery{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't read http response body")
	assert.True(t, body.closed)
}
