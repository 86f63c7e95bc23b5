package testsupport

import (
	"context"
	"testing"

	"dugout/internal/config"
	"dugout/internal/store"
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

// SeedVideo upserts a minimal metadata row for tests.
func SeedVideo(t testing.TB, st *store.Store, video *store.Video) {
	t.Helper()

	if err := st.UpsertVideo(context.Background(), video); err != nil {
		t.Fatalf("store.UpsertVideo: %v", err)
	}
}

// SeedBacklog inserts video IDs into the processing backlog for tests.
func SeedBacklog(t testing.TB, st *store.Store, videoIDs ...string) {
	t.Helper()

	if _, err := st.UpsertVideoIDs(context.Background(), videoIDs); err != nil {
		t.Fatalf("store.UpsertVideoIDs: %v", err)
	}
}
