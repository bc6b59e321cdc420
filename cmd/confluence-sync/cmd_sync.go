/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-sync/publish"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

var syncUsage = strings.TrimSpace(`
Publish Markdown files as child pages of one Confluence page.

Every file becomes a page titled after its first line, if that is a "# " heading, or else after its
file name.  A page with that title that already exists in the space is updated, unless its content
is identical already.  Give either --input-file or --input-directory; directories are searched
recursively for *.md files.

Every flag can also come from the config file, and most from the environment the way a GitHub
Action passes its inputs: INPUT_CLOUD, INPUT_USER, INPUT_TOKEN, INPUT_PARENT_PAGE_ID,
INPUT_SPACE_KEY, INPUT_SPACE_ID, INPUT_INPUT_FILE, INPUT_INPUT_DIRECTORY, INPUT_EXCLUDE_FILES,
INPUT_FULL_WIDTH and GITHUB_WORKSPACE.

Links to all created and updated pages are printed to stdout, one "Title: URL" per line.
`)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish Markdown files to Confluence",
	Long:  syncUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd.Context(), os.Stdout, os.Stderr)
	},
}

var (
	InputFile        string
	InputDirectories []string
	ExcludeFiles     []string
	ParentPageID     string
	SpaceKey         string
	SpaceID          string
	Workspace        string
	VersionMessage   string
	FullWidth        bool
	DryRun           bool
	ShowProgress     bool
	WithVCR          bool
	VCRCassette      string
	Workers          int
)

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&InputFile, "input-file", "", "publish this one Markdown file")
	syncCmd.Flags().StringSliceVar(&InputDirectories, "input-directory", []string{}, "publish all Markdown files below these directories")
	syncCmd.Flags().StringSliceVar(&ExcludeFiles, "exclude-files", []string{}, "file names to skip in directory mode, e.g. README.md")
	syncCmd.Flags().StringVar(&ParentPageID, "parent-page-id", "", "ID of the page new pages are created under")
	syncCmd.Flags().StringVar(&SpaceKey, "space-key", "", "key of the space to publish in, e.g. DOCS")
	syncCmd.Flags().StringVar(&SpaceID, "space-id", "", "numeric ID of the space to publish in, saves looking up --space-key")
	syncCmd.Flags().StringVar(&Workspace, "workspace", "", "relative input paths are relative to this directory")
	syncCmd.Flags().StringVar(&VersionMessage, "version-message", "", "message attached to updated page versions")
	syncCmd.Flags().BoolVar(&FullWidth, "full-width", false, "make newly created pages full width")
	syncCmd.Flags().BoolVarP(&DryRun, "dry-run", "n", false, "look pages up, but don't change anything")
	syncCmd.Flags().BoolVar(&ShowProgress, "progress", false, "show a progress bar")
	syncCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay HTTP interactions")
	syncCmd.Flags().StringVar(&VCRCassette, "vcr-cassette", "fixtures/confluence-sync", "where --with-vcr keeps its recordings, without .yaml")
	syncCmd.Flags().IntVar(&Workers, "workers", publish.DefaultWorkers, "how many files to render in parallel")
}

func syncConfig() publish.Config {
	return publish.Config{
		Instance:         ConfluenceInstance,
		ParentPageID:     strings.TrimSpace(ParentPageID),
		SpaceID:          strings.TrimSpace(SpaceID),
		SpaceKey:         strings.TrimSpace(SpaceKey),
		InputFile:        strings.TrimSpace(InputFile),
		InputDirectories: cleanList(InputDirectories),
		Workspace:        strings.TrimSpace(Workspace),
		ExcludeFiles:     cleanList(ExcludeFiles),
		FullWidth:        FullWidth,
		DryRun:           DryRun,
		Timeout:          Timeout,
		Workers:          Workers,
		VersionMessage:   VersionMessage,
	}
}

func runSync(ctx context.Context, stdout io.Writer, stderr io.Writer) error {
	api, err := newAPI()
	if err != nil {
		return err
	}

	if WithVCR {
		stop, err := withVCR(api, VCRCassette, recorder.ModeReplayWithNewEpisodes)
		if err != nil {
			return err
		}
		defer func() {
			if err := stop(); err != nil {
				fmt.Fprintf(stderr, "couldn't save go-vcr cassette: %v\n", err)
			}
		}()
	}

	config := syncConfig()
	if err := config.Validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	user, err := api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("sync: couldn't authenticate against %s: %w", api.BaseURI, err)
	}
	debugLog("Talking to %s as %s\n", api.BaseURI, user.DisplayName)

	mode, _ := config.Mode()
	debugLog("Syncing in %s mode, parent page %s, dry run %v\n", mode, config.ParentPageID, config.DryRun)

	pub := publish.NewPublisher(api, config, log.New(stderr, "", log.LstdFlags))
	if ShowProgress {
		pub.Progress = stderr
	}

	report, err := pub.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	printLinks(stdout, report.Links(), Color)
	printSummary(stderr, report, Color)

	return nil
}
