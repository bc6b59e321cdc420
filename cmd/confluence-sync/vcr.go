package main

import (
	"fmt"
	"net/http"

	"github.com/toothbrush/confluence-sync/confluence"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// withVCR sends the API's traffic through a go-vcr recorder.  Interactions are kept in
// <cassetteName>.yaml, minus Authorization headers.  Call the returned func when done, that's when
// the cassette gets written.
func withVCR(api *confluence.API, cassetteName string, mode recorder.Mode) (func() error, error) {
	opts := &recorder.Options{
		CassetteName:       cassetteName,
		Mode:               mode,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence-sync: couldn't set up go-vcr recording: %w", err)
	}

	// Add a hook which removes Authorization headers from all requests
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	api.Client = r.GetDefaultClient()
	debugLog("Recording HTTP interactions to %s.yaml\n", cassetteName)

	return r.Stop, nil
}
