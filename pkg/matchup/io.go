package matchup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFeed reads and decodes a statistics document from disk.
func LoadFeed(path string) (*RawFeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return ParseFeed(data)
}

// SaveDiff writes a diff to disk as JSON.
func SaveDiff(path string, diff *Diff) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for diff: %w", err)
	}

	data, err := json.MarshalIndent(diff, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling diff: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing diff: %w", err)
	}

	return nil
}

// LoadDiff reads a diff from disk.
func LoadDiff(path string) (*Diff, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}

	var diff Diff
	if err := json.Unmarshal(data, &diff); err != nil {
		return nil, fmt.Errorf("unmarshaling diff: %w", err)
	}

	return &diff, nil
}
