/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-sync/confluence"
	"github.com/toothbrush/confluence-sync/internal/termfmt"
	"golang.org/x/exp/maps"
)

var listSpacesUsage = strings.TrimSpace(`
If you want to find out what spaces your Confluence wiki has, and which key to give --space-key,
use this command.
`)

var IncludePersonal bool

var listSpacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Print list of spaces",
	Long:  listSpacesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}

		return listSpaces(cmd.Context(), api, os.Stdout)
	},
}

func init() {
	listCmd.AddCommand(listSpacesCmd)

	listSpacesCmd.Flags().BoolVar(&IncludePersonal, "include-personal-spaces", false, "list individuals' personal spaces")
}

func listSpaces(ctx context.Context, api *confluence.API, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	debugLog("Listing Confluence spaces in %s...\n", ConfluenceInstance)
	spacesRemote, err := api.ListAllSpaces(ctx, ConfluenceInstance, IncludePersonal)
	if err != nil {
		return fmt.Errorf("list: couldn't list Confluence spaces: %w", err)
	}
	debugLog("Found %d spaces on '%s'.\n", len(spacesRemote), ConfluenceInstance)

	spaceKeys := maps.Keys(spacesRemote)
	sort.Strings(spaceKeys)

	fmt.Fprintf(out, "spaces:\n")
	for _, spaceKey := range spaceKeys {
		s := spacesRemote[spaceKey]
		fmt.Fprintf(out, "  - %s: %s (id %s)\n", termfmt.Bold().Enabled(Color).V(spaceKey), s.Name, s.ID)
	}

	return nil
}
