package publish

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 4
)

var (
	ErrNoInput        = errors.New("publish: no specific input provided, set an input file or an input directory")
	ErrAmbiguousInput = errors.New("publish: both an input file and an input directory are set, pick one")

	// A found page has to tell us its version, or we can't write the next one.
	ErrNoVersion = errors.New("publish: page came back without a version number")
)

// Mode says where the documents come from.
type Mode int

const (
	ModeFile Mode = iota
	ModeDirectory
)

func (m Mode) String() string {
	if m == ModeDirectory {
		return "directory"
	}
	return "file"
}

// Config is everything a sync run needs to know, built once at startup.  Credentials live on the
// confluence.API instead.
type Config struct {
	// ORG in ORG.atlassian.net
	Instance string

	// New pages are created as children of this page.
	ParentPageID string

	// Either SpaceID, or SpaceKey which gets resolved to an ID before anything else happens.
	SpaceID  string
	SpaceKey string

	InputFile        string
	InputDirectories []string

	// Relative input paths are taken relative to this, e.g. $GITHUB_WORKSPACE.
	Workspace string

	// Bare file names (no directories, no globs) to skip in directory mode.
	ExcludeFiles []string

	FullWidth bool
	DryRun    bool

	// Applied to every single HTTP call.
	Timeout time.Duration

	// How many documents get rendered at once.  Talking to Confluence is always sequential.
	Workers int

	// Attached to page versions we create by updating.
	VersionMessage string
}

// Validate checks the settings that don't need the network.
func (c Config) Validate() error {
	if c.ParentPageID == "" {
		return fmt.Errorf("publish: missing value for parent page id")
	}
	if c.SpaceID == "" && c.SpaceKey == "" {
		return fmt.Errorf("publish: missing value for space key (or space id)")
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	return nil
}

func (c Config) Mode() (Mode, error) {
	hasFile := c.InputFile != ""
	hasDirs := len(c.InputDirectories) > 0

	switch {
	case hasFile && hasDirs:
		return ModeFile, ErrAmbiguousInput
	case hasFile:
		return ModeFile, nil
	case hasDirs:
		return ModeDirectory, nil
	}
	return ModeFile, ErrNoInput
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return DefaultWorkers
	}
	return c.Workers
}

// resolvePath expands ~ and anchors relative paths at the workspace.
func (c Config) resolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("publish: couldn't expand homedir in %s: %w", p, err)
	}

	if filepath.IsAbs(expanded) || c.Workspace == "" {
		return expanded, nil
	}

	workspace, err := homedir.Expand(c.Workspace)
	if err != nil {
		return "", fmt.Errorf("publish: couldn't expand homedir in %s: %w", c.Workspace, err)
	}
	return filepath.Join(workspace, expanded), nil
}
