package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadMissingFileDefaults(t *testing.T) {
	s := setupTestStore(t)
	if !s.Load().CommentsEnabled {
		t.Error("comments should default to enabled when no file exists")
	}
}

func TestLoadCorruptFileDefaults(t *testing.T) {
	s := setupTestStore(t)
	if err := os.WriteFile(s.path, []byte(`{"comments_enabled": fal`), 0o644); err != nil {
		t.Fatal(err)
	}
	if !s.Load().CommentsEnabled {
		t.Error("corrupt file should fall back to defaults")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Save(Settings{CommentsEnabled: false}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if s.Load().CommentsEnabled {
		t.Error("expected comments disabled after save")
	}

	if err := s.Save(Settings{CommentsEnabled: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Load().CommentsEnabled {
		t.Error("expected comments enabled after save")
	}
}
