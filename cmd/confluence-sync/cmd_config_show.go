/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.  Tokens are
never printed, only whether one is set.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(os.Stdout)
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}

// effectiveConfig is what `config show` prints.  Note, you can only talk about persistent flags
// here.  Command-specific ones only show up in the parsed config file.
type effectiveConfig struct {
	ConfigFile string `yaml:"config-file"`
	EnvFile    string `yaml:"env-file,omitempty"`
	Debug      bool   `yaml:"debug"`
	Color      bool   `yaml:"color"`

	ConfluenceInstance string   `yaml:"confluence-instance"`
	AuthUsername       string   `yaml:"auth-username"`
	AuthToken          string   `yaml:"auth-token"`
	AuthTokenCmd       []string `yaml:"auth-token-cmd,flow"`
	BaseURL            string   `yaml:"base-url,omitempty"`
	Timeout            string   `yaml:"timeout"`

	ParsedConfig YamlConfig `yaml:"parsed-config-file"`
}

func showConfig(out io.Writer) error {
	current := effectiveConfig{
		ConfigFile:         ConfigActual,
		EnvFile:            EnvFile,
		Debug:              Debug,
		Color:              Color,
		ConfluenceInstance: ConfluenceInstance,
		AuthUsername:       AuthUsername,
		AuthToken:          redact(AuthToken),
		AuthTokenCmd:       AuthTokenCmd,
		BaseURL:            BaseURL,
		Timeout:            Timeout.String(),
		ParsedConfig:       ParsedConfig,
	}

	dump, err := yaml.Marshal(current)
	if err != nil {
		return fmt.Errorf("config: couldn't marshal config: %w", err)
	}

	fmt.Fprintf(out, "# Dump current config state:\n%s", dump)
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "<redacted>"
}
