/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"time"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/toothbrush/confluence-sync/publish"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "~/.config/confluence-sync.yaml"

var (
	// Store the result of binding cobra flags
	Config  string
	EnvFile string
	Debug   bool
	Color   bool

	// Config file we actually read, empty if there was none.
	ConfigActual string

	// Command to run to retrieve API Personal Access Token, if it isn't given directly.
	AuthTokenCmd []string
	AuthToken    string

	AuthUsername       string
	ConfluenceInstance string
	BaseURL            string
	Timeout            time.Duration

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "confluence-sync",
	Short: "Publish Markdown files as Confluence pages",
	Long: `
Keep documentation in git, read it in Confluence.  This tool renders local Markdown files and
creates or updates one Confluence page per file, all children of a single parent page.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("confluence-sync: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfigPath+", respects CONFLUENCE_SYNC_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&EnvFile, "env-file", "", "read environment variables from this file (default: ./.env, if it exists)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVar(&Color, "color", false, "colourise output")
	rootCmd.PersistentFlags().StringVar(&ConfluenceInstance, "confluence-instance", "", "your Atlassian ORG name, e.g. ORG in ORG.atlassian.net ($INPUT_CLOUD)")
	rootCmd.PersistentFlags().StringVar(&AuthUsername, "auth-username", "", "your Atlassian username ($INPUT_USER)")
	rootCmd.PersistentFlags().StringVar(&AuthToken, "auth-token", "", "Atlassian API token ($INPUT_TOKEN)")
	rootCmd.PersistentFlags().StringSliceVar(&AuthTokenCmd, "auth-token-cmd", []string{}, "shell command to retrieve Atlassian auth token")
	rootCmd.PersistentFlags().StringVar(&BaseURL, "base-url", "", "wiki base URL (default: https://ORG.atlassian.net/wiki)")
	rootCmd.PersistentFlags().DurationVar(&Timeout, "timeout", publish.DefaultTimeout, "timeout for each call to Confluence")
}

// initializeConfig layers the configuration sources.  Each step only fills in flags that are still
// unset, so the order here is the order of precedence: flags, environment (including the env
// file), config file.
func initializeConfig(cmd *cobra.Command) error {
	if err := loadEnvFile(EnvFile); err != nil {
		return err
	}

	if err := bindEnv(cmd); err != nil {
		return fmt.Errorf("confluence-sync: failed to bind environment: %w", err)
	}

	return loadConfigFile(cmd)
}

func loadConfigFile(cmd *cobra.Command) error {
	// Without a config file we're fine, unless the user pointed us at one.
	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("CONFLUENCE_SYNC_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = defaultConfigPath
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("confluence-sync: unable to expand homedir: %w", err)
	}
	Config = config

	if _, err := os.Stat(Config); errors.Is(err, os.ErrNotExist) {
		if explicit {
			fmt.Fprintf(os.Stderr, "Couldn't read config file %s, does it exist?  Override with --config.\n", Config)
			return fmt.Errorf("confluence-sync: specified config file does not exist: %w", err)
		}
		debugLog("No config file at %s, carrying on without.\n", Config)
		return nil
	}

	yamlFile, err := os.ReadFile(Config)
	if err != nil {
		return fmt.Errorf("confluence-sync: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	ParsedConfig = YamlConfig{}
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("confluence-sync: issue parsing config file: %w", err)
	}
	ConfigActual = Config

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("confluence-sync: failed to bind flags: %w", err)
	}

	return nil
}

// YamlConfig is the config file.  Keys are flag names.  The API token is deliberately absent, use
// auth-token-cmd instead.
type YamlConfig struct {
	FullWidth *bool `yaml:"full-width"`
	DryRun    *bool `yaml:"dry-run"`
	Progress  *bool `yaml:"progress"`
	WithVCR   *bool `yaml:"with-vcr"`
	Color     *bool `yaml:"color"`
	Workers   *int  `yaml:"workers"`

	ConfluenceInstance string   `yaml:"confluence-instance"`
	AuthUsername       string   `yaml:"auth-username"`
	AuthTokenCmd       []string `yaml:"auth-token-cmd"`
	BaseURL            string   `yaml:"base-url"`
	Timeout            string   `yaml:"timeout"`

	ParentPageID   string   `yaml:"parent-page-id"`
	SpaceKey       string   `yaml:"space-key"`
	SpaceID        string   `yaml:"space-id"`
	InputFile      string   `yaml:"input-file"`
	InputDirectory []string `yaml:"input-directory"`
	ExcludeFiles   []string `yaml:"exclude-files"`
	Workspace      string   `yaml:"workspace"`
	VersionMessage string   `yaml:"version-message"`
	VCRCassette    string   `yaml:"vcr-cassette"`
}

// Bind each cobra flag that's still unset to its value from the config file.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("confluence-sync: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// The flag is unknown.  That's legit when you're running e.g. `list spaces`, which has
			// no `input-file` flag, with a config file that does set it.
			continue
		}
		if cmd.Flags().Changed(key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// Pointers so we can tell "false"/0 apart from "not set".
			switch p := field.Value().(type) {
			case *bool:
				if p != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *p))
				}
			case *int:
				if p != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%d", *p))
				}
			default:
				return fmt.Errorf("confluence-sync: found unrecognised field: %+v", field)
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("confluence-sync: found unrecognised field: %+v", field)
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("confluence-sync: bad value for %s in config file: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("confluence-sync: found unrecognised field: %+v", field)
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				cmd.Flags().Set(key, s)
			}

		default:
			return fmt.Errorf("confluence-sync: found unrecognised field: %+v", field)
		}
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// ^C stops a sync between two pages rather than halfway through one.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("confluence-sync: execution error: %w", err)
	}

	return nil
}
