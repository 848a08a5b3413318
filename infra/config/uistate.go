package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UIState is the small slice of interface state persisted between runs.
type UIState struct {
	FeedSource string `json:"feed_source,omitempty"` // "home", "trending", "tag"
	Tag        string `json:"tag,omitempty"`
}

// LoadUIState reads the persisted UI state. A missing or unreadable file
// yields the zero state without error; the app falls back to defaults.
func LoadUIState(path string) (UIState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UIState{}, nil
	}
	var st UIState
	if err := json.Unmarshal(data, &st); err != nil {
		return UIState{}, nil
	}
	return st, nil
}

// SaveUIState writes the UI state, creating parent directories as needed.
func SaveUIState(path string, st UIState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing state to %s: %w", path, err)
	}
	return nil
}
