// Package storage implements the on-disk image file store.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore saves uploaded files under a single root directory. File names
// are generated by the caller and never taken from user input, so path
// traversal cannot reach outside the root; Path rejects separators anyway.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory when missing.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Save(name string, src io.Reader) error {
	path := s.Path(name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (s *DiskStore) Path(name string) string {
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(s.root, name)
}

func (s *DiskStore) Remove(name string) error {
	return os.Remove(s.Path(name))
}
