package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

// envBindings maps flag names to the environment variables a GitHub Action passes its inputs in.
var envBindings = map[string]string{
	"confluence-instance": "INPUT_CLOUD",
	"auth-username":       "INPUT_USER",
	"auth-token":          "INPUT_TOKEN",
	"parent-page-id":      "INPUT_PARENT_PAGE_ID",
	"space-key":           "INPUT_SPACE_KEY",
	"space-id":            "INPUT_SPACE_ID",
	"input-file":          "INPUT_INPUT_FILE",
	"input-directory":     "INPUT_INPUT_DIRECTORY",
	"exclude-files":       "INPUT_EXCLUDE_FILES",
	"full-width":          "INPUT_FULL_WIDTH",
	"workspace":           "GITHUB_WORKSPACE",
}

// loadEnvFile puts the contents of a dotenv file into the environment.  Variables that are already
// set win.  With no path given, ./.env is used if it's there.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("confluence-sync: unable to expand homedir: %w", err)
	}

	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("confluence-sync: couldn't load env file %s: %w", expanded, err)
	}
	debugLog("Loaded environment from %s\n", expanded)

	return nil
}

// bindEnv sets every flag of cmd that wasn't given on the command line from its environment
// variable, if that is non-empty.
func bindEnv(cmd *cobra.Command) error {
	names := maps.Keys(envBindings)
	sort.Strings(names)

	for _, name := range names {
		env := envBindings[name]

		value := strings.TrimSpace(os.Getenv(env))
		if value == "" {
			continue
		}
		if cmd.Flag(name) == nil || cmd.Flags().Changed(name) {
			continue
		}

		if name == "full-width" {
			value = strconv.FormatBool(truthy(value))
		}

		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("confluence-sync: bad value in $%s: %w", env, err)
		}
		debugLog("--%s taken from $%s\n", name, env)
	}

	return nil
}

// truthy is how Action inputs spell booleans: anything but empty, false, 0 or no.
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "no":
		return false
	}
	return true
}

// cleanList trims every item and drops empty ones, so "a.md, b.md," works.
func cleanList(items []string) []string {
	out := []string{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
