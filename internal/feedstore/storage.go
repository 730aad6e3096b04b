// Package feedstore keeps matchup feed snapshots in blob storage and turns
// them into matchup repositories.
package feedstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no feed is stored under a name.
var ErrNotFound = errors.New("feed not found")

// Storage abstracts blob storage for feed snapshots.
type Storage interface {
	PutFeed(ctx context.Context, name string, data []byte) error
	GetFeed(ctx context.Context, name string) ([]byte, error)
}

// feedKey maps a feed name to its object key. Names are patch versions
// ("14.20") or aliases such as "latest".
func feedKey(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid feed name %q", name)
	}
	return "feeds/" + name + ".json", nil
}

// LocalStorage implements Storage using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(name string) (string, error) {
	key, err := feedKey(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.BaseDir, filepath.FromSlash(key)), nil
}

// PutFeed stores a feed blob.
func (s *LocalStorage) PutFeed(_ context.Context, name string, data []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetFeed retrieves a feed blob.
func (s *LocalStorage) GetFeed(_ context.Context, name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}
