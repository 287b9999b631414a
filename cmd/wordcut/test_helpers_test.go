package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"wordcut/internal/api"
	"wordcut/internal/script"
	"wordcut/internal/testsupport"
)

// runCLI executes the root command with the given arguments and returns the
// captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type fakeProber struct {
	duration float64
}

func (f fakeProber) Duration(ctx context.Context, path string) (float64, error) {
	return f.duration, nil
}

// startAPIServer runs the daemon API against a scratch store and returns its
// base address for the --api flag.
func startAPIServer(t *testing.T) string {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	router := api.NewRouter(api.ServerConfig{
		Store:   st,
		Prober:  fakeProber{duration: 10},
		Options: script.Options{PauseThreshold: cfg.Editor.PauseThreshold},
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
