package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements Store on the local filesystem. Used for development
// and tests.
type LocalStore struct {
	baseDir   string
	publicURL string
}

func NewLocalStore(baseDir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &LocalStore{baseDir: baseDir, publicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, payload []byte, _ string) (string, error) {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(fullPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.publicURL + "/" + key, nil
}
