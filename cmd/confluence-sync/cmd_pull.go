/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-sync/confluence"
	"github.com/toothbrush/confluence-sync/markdown"
)

var pullUsage = strings.TrimSpace(`
Print a Confluence page as Markdown.  Useful to seed a file with a page that so far only lived in
the wiki, or to check what a sync would compare against.

Find the page with --id, or with --title inside --space-key or --space-id.
`)

var (
	PullID    string
	PullTitle string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Print a Confluence page as Markdown",
	Long:  pullUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}

		return pull(cmd.Context(), api, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)

	pullCmd.Flags().StringVar(&PullID, "id", "", "ID of the page")
	pullCmd.Flags().StringVar(&PullTitle, "title", "", "exact title of the page")
	pullCmd.Flags().StringVar(&SpaceKey, "space-key", "", "key of the space to look for --title in")
	pullCmd.Flags().StringVar(&SpaceID, "space-id", "", "numeric ID of the space to look for --title in")
}

func pull(ctx context.Context, api *confluence.API, out io.Writer) error {
	page, err := fetchPage(ctx, api)
	if err != nil {
		return err
	}

	if page.Body.Storage == nil {
		return fmt.Errorf("pull: page %s came back without a storage body", page.ID)
	}

	body, err := markdown.FromStorage(page.Body.Storage.Value, api.BaseURI)
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	fmt.Fprintf(out, "# %s\n\n%s\n", page.Title, body)
	return nil
}

func fetchPage(ctx context.Context, api *confluence.API) (*confluence.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	switch {
	case PullID != "" && PullTitle != "":
		return nil, fmt.Errorf("pull: pick one of --id and --title")

	case PullID != "":
		return pageByID(ctx, api, PullID)

	case PullTitle != "":
		spaceID := SpaceID
		if spaceID == "" && SpaceKey != "" {
			space, err := api.SpaceByKey(ctx, ConfluenceInstance, SpaceKey)
			if err != nil {
				return nil, fmt.Errorf("pull: %w", err)
			}
			spaceID = space.ID
		}

		lookup, err := api.FindPageByTitle(ctx, confluence.FindPageQuery{SpaceID: spaceID, Title: PullTitle})
		if err != nil {
			return nil, fmt.Errorf("pull: %w", err)
		}
		if !lookup.Found() {
			return nil, fmt.Errorf("pull: no current page titled '%s'", PullTitle)
		}
		if _, ok := lookup.StoredContent(); ok {
			return lookup.Page, nil
		}
		debugLog("Lookup of '%s' had no body, fetching page %s\n", PullTitle, lookup.Page.ID)
		return pageByID(ctx, api, lookup.Page.ID)
	}

	return nil, fmt.Errorf("pull: please provide --id or --title")
}

func pageByID(ctx context.Context, api *confluence.API, rawID string) (*confluence.Page, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, fmt.Errorf("pull: page id was not an int: %w", err)
	}

	page, err := api.GetPageByID(ctx, confluence.GetPageByIDQuery{
		ID:         id,
		BodyFormat: confluence.RepresentationStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("pull: %w", err)
	}

	return page, nil
}
