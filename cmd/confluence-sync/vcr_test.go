package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/confluence-sync/confluence"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

func TestWithVCRRecordsWithoutCredentials(t *testing.T) {
	srv := useServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, confluence.User{AccountID: "abc", DisplayName: "Me"})
	}))
	fixtures := filepath.Join(t.TempDir(), "fixtures")
	require.NoError(t, os.MkdirAll(fixtures, 0o750))
	cassetteName := filepath.Join(fixtures, "confluence-sync")

	api, err := newAPI()
	require.NoError(t, err)

	stop, err := withVCR(api, cassetteName, recorder.ModeRecordOnly)
	require.NoError(t, err)

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Me", user.DisplayName)
	require.NoError(t, stop())

	recorded, err := os.ReadFile(cassetteName + ".yaml")
	require.NoError(t, err)
	assert.Contains(t, string(recorded), "/wiki/rest/api/user/current")
	assert.NotContains(t, string(recorded), "Authorization")
	assert.NotContains(t, string(recorded), "Basic ")

	// with the server gone, the cassette answers
	srv.Close()

	replayAPI, err := newAPI()
	require.NoError(t, err)
	stop, err = withVCR(replayAPI, cassetteName, recorder.ModeReplayOnly)
	require.NoError(t, err)
	defer stop()

	user, err = replayAPI.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", user.AccountID)
}
