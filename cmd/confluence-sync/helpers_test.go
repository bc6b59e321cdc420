package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-sync/confluence"
)

// saveGlobals restores every flag-bound global once the test is done.
func saveGlobals(t *testing.T) {
	t.Helper()

	config, envFile, debug, color, configActual := Config, EnvFile, Debug, Color, ConfigActual
	tokenCmd, token, user, instance, baseURL, timeout := AuthTokenCmd, AuthToken, AuthUsername, ConfluenceInstance, BaseURL, Timeout
	parsed := ParsedConfig
	inFile, inDirs, exclude, parent, spaceKey, spaceID := InputFile, InputDirectories, ExcludeFiles, ParentPageID, SpaceKey, SpaceID
	workspace, message, fullWidth, dryRun, progress, vcr, cassette, workers := Workspace, VersionMessage, FullWidth, DryRun, ShowProgress, WithVCR, VCRCassette, Workers
	pullID, pullTitle, personal := PullID, PullTitle, IncludePersonal

	t.Cleanup(func() {
		Config, EnvFile, Debug, Color, ConfigActual = config, envFile, debug, color, configActual
		AuthTokenCmd, AuthToken, AuthUsername, ConfluenceInstance, BaseURL, Timeout = tokenCmd, token, user, instance, baseURL, timeout
		ParsedConfig = parsed
		InputFile, InputDirectories, ExcludeFiles, ParentPageID, SpaceKey, SpaceID = inFile, inDirs, exclude, parent, spaceKey, spaceID
		Workspace, VersionMessage, FullWidth, DryRun, ShowProgress, WithVCR, VCRCassette, Workers = workspace, message, fullWidth, dryRun, progress, vcr, cassette, workers
		PullID, PullTitle, IncludePersonal = pullID, pullTitle, personal
	})
}

// useServer points the CLI's globals at handler.
func useServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	saveGlobals(t)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ConfluenceInstance = "example"
	AuthUsername = "me@example.com"
	AuthToken = "s3cret"
	AuthTokenCmd = nil
	BaseURL = srv.URL + "/wiki"
	Timeout = 5 * time.Second

	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func storagePage(id, title, value string) confluence.Page {
	page := confluence.Page{
		ID:      id,
		Title:   title,
		Status:  confluence.StatusCurrent,
		Version: &confluence.Version{Number: 1},
		Body: confluence.Body{Storage: &confluence.Storage{
			Representation: confluence.RepresentationStorage,
			Value:          value,
		}},
	}
	page.Links.WebUI = "/spaces/DOCS/pages/" + id
	return page
}

// testCommand has the flags the binding code cares about, without touching rootCmd.
func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("space-key", "", "")
	cmd.Flags().String("parent-page-id", "", "")
	cmd.Flags().String("input-file", "", "")
	cmd.Flags().StringSlice("input-directory", []string{}, "")
	cmd.Flags().StringSlice("exclude-files", []string{}, "")
	cmd.Flags().Bool("full-width", false, "")
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().Int("workers", 4, "")
	cmd.Flags().Duration("timeout", 10*time.Second, "")
	return cmd
}
