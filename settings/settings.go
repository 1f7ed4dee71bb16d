// Package settings persists site feature toggles as a single JSON
// document. Reads are tolerant: a missing or broken file means the
// defaults, never an error.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// Settings holds the feature toggles.
type Settings struct {
	CommentsEnabled bool `json:"comments_enabled"`
}

// Defaults returns the settings used when no file exists yet.
func Defaults() Settings {
	return Settings{CommentsEnabled: true}
}

// Store persists Settings at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store over the given JSON file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the settings, falling back to Defaults when the file is
// missing, empty, or corrupt.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		return Defaults()
	}
	v := Defaults()
	if err := json.Unmarshal(data, &v); err != nil {
		return Defaults()
	}
	return v
}

// Save rewrites the settings document.
func (s *Store) Save(v Settings) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}
