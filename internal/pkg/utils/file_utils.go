package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateInDir creates (or truncates) name inside dir, creating dir when it is missing.
// It returns the open file and its path.
func CreateInDir(dir, name string) (*os.File, string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create file %s: %w", path, err)
	}
	return f, path, nil
}
