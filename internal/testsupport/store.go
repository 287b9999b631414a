package testsupport

import (
	"context"
	"testing"

	"wordcut/internal/config"
	"wordcut/internal/project"
	"wordcut/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedProject creates and persists a project for tests.
func SeedProject(t testing.TB, st *store.Store, id, name string) *project.Project {
	t.Helper()

	p := project.New(id, name)
	if err := st.SaveProject(context.Background(), p); err != nil {
		t.Fatalf("store.SaveProject: %v", err)
	}
	return p
}
