// Package storage keeps uploaded files on the local filesystem
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// localStorage stores files flat under a base directory
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// path resolves a stored file name inside the base directory.
// Names containing path separators are rejected.
func (s *localStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(s.basePath, name), nil
}

// Create creates a new file and returns a WriteCloser
func (s *localStorage) Create(name string) (io.WriteCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// Delete removes a file
func (s *localStorage) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
