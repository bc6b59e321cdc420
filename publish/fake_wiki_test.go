package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toothbrush/confluence-sync/confluence"
)

// fakeWiki is just enough of Confluence's v2 API to sync against.
type fakeWiki struct {
	mu sync.Mutex

	pages  map[string]*confluence.Page // by title
	nextID int

	lookups, creates, updates, properties int

	created []confluence.CreatePageRequest
	updated []confluence.UpdatePageRequest

	// Non-zero: answer the matching call with this status.
	lookupStatus, createStatus, updateStatus, propertyStatus int

	// Pretend the server ignored body-format.
	omitBody bool
}

func newFakeWiki() *fakeWiki {
	return &fakeWiki{pages: map[string]*confluence.Page{}, nextID: 100}
}

func (f *fakeWiki) seed(title string, version int, storage string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := fmt.Sprintf("%d", f.nextID)
	f.nextID++
	page := &confluence.Page{
		ID:      id,
		Title:   title,
		Status:  confluence.StatusCurrent,
		Version: &confluence.Version{Number: version},
		Body: confluence.Body{Storage: &confluence.Storage{
			Representation: confluence.RepresentationStorage,
			Value:          storage,
		}},
	}
	page.Links.WebUI = "/spaces/DOCS/pages/" + id
	f.pages[title] = page
}

func (f *fakeWiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == "/wiki/api/v2/spaces":
		if r.URL.Query().Get("keys") == "DOCS" {
			writeJSON(w, map[string]any{"results": []confluence.Space{{ID: "42", Key: "DOCS", Name: "Docs"}}})
			return
		}
		writeJSON(w, map[string]any{"results": []confluence.Space{}})

	case r.Method == http.MethodGet && path == "/wiki/api/v2/pages":
		f.lookups++
		if f.lookupStatus != 0 {
			w.WriteHeader(f.lookupStatus)
			return
		}
		results := []confluence.Page{}
		if page, ok := f.pages[r.URL.Query().Get("title")]; ok {
			found := *page
			if f.omitBody {
				found.Body = confluence.Body{}
			}
			results = append(results, found)
		}
		writeJSON(w, map[string]any{"results": results})

	case r.Method == http.MethodPost && path == "/wiki/api/v2/pages":
		f.creates++
		var req confluence.CreatePageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.created = append(f.created, req)
		if f.createStatus != 0 {
			w.WriteHeader(f.createStatus)
			return
		}
		id := fmt.Sprintf("%d", f.nextID)
		f.nextID++
		page := &confluence.Page{
			ID:       id,
			Title:    req.Title,
			SpaceID:  req.SpaceID,
			ParentID: req.ParentID,
			Version:  &confluence.Version{Number: 1},
			Body:     confluence.Body{Storage: &req.Body},
		}
		page.Links.WebUI = "/spaces/DOCS/pages/" + id
		f.pages[req.Title] = page
		writeJSON(w, page)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/properties"):
		f.properties++
		if f.propertyStatus != 0 {
			w.WriteHeader(f.propertyStatus)
			return
		}
		writeJSON(w, map[string]any{"id": "1", "key": confluence.AppearancePublishedKey, "value": confluence.AppearanceFullWidth})

	case r.Method == http.MethodPut && strings.HasPrefix(path, "/wiki/api/v2/pages/"):
		f.updates++
		var req confluence.UpdatePageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.updated = append(f.updated, req)
		if f.updateStatus != 0 {
			w.WriteHeader(f.updateStatus)
			return
		}
		page, ok := f.pages[req.Title]
		if !ok || page.ID != strings.TrimPrefix(path, "/wiki/api/v2/pages/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Version.Number != page.Version.Number+1 {
			w.WriteHeader(http.StatusConflict)
			return
		}
		page.Version = &confluence.Version{Number: req.Version.Number, Message: req.Version.Message}
		page.Body.Storage = &req.Body
		writeJSON(w, page)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// newTestPublisher wires a Publisher to a fake wiki.  The returned buffer collects the log.
func newTestPublisher(t *testing.T, wiki *fakeWiki, config Config) (*Publisher, *confluence.API, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(wiki)
	t.Cleanup(srv.Close)

	api, err := confluence.NewAPI("example", "me@example.com", "token")
	require.NoError(t, err)
	require.NoError(t, api.SetBaseURI(srv.URL+"/wiki"))
	api.Client = srv.Client()

	if config.ParentPageID == "" {
		config.ParentPageID = "7"
	}
	if config.SpaceID == "" && config.SpaceKey == "" {
		config.SpaceKey = "DOCS"
	}
	config.Instance = "example"

	var logs bytes.Buffer
	return NewPublisher(api, config, log.New(&logs, "", 0)), api, &logs
}
