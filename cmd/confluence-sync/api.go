package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/toothbrush/confluence-sync/confluence"
)

func newAPI() (*confluence.API, error) {
	token, err := authToken()
	if err != nil {
		return nil, err
	}

	api, err := confluence.NewAPI(ConfluenceInstance, AuthUsername, token)
	if err != nil {
		return nil, fmt.Errorf("confluence-sync: couldn't instantiate Confluence API: %w", err)
	}

	if BaseURL != "" {
		if err := api.SetBaseURI(BaseURL); err != nil {
			return nil, fmt.Errorf("confluence-sync: bad --base-url: %w", err)
		}
	}
	debugLog("Using wiki at %s\n", api.BaseURI)

	return api, nil
}

// authToken prefers a token given directly, and otherwise runs --auth-token-cmd and takes the first
// line it prints.
func authToken() (string, error) {
	if AuthToken != "" {
		return AuthToken, nil
	}

	if len(AuthTokenCmd) < 1 {
		return "", fmt.Errorf("confluence-sync: please provide --auth-token, $INPUT_TOKEN or --auth-token-cmd")
	}

	tokenCmdOutput, err := exec.Command(AuthTokenCmd[0], AuthTokenCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("confluence-sync: couldn't execute auth-token-cmd '%v': %w", AuthTokenCmd, err)
	}

	token := strings.TrimSpace(strings.Split(string(tokenCmdOutput), "\n")[0])
	if token == "" {
		return "", fmt.Errorf("confluence-sync: auth-token-cmd '%v' printed no token", AuthTokenCmd)
	}

	return token, nil
}
