package fsxlocal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matchhire/matchhire/pkg/fsx"
)

// LocalFileSystem implements fsx.FileSystem on the local disk.
// Used for staging uploaded files before processing.
type LocalFileSystem struct {
	baseDir string
}

// NewLocalFileSystem creates a file system rooted at baseDir, creating it if needed
func NewLocalFileSystem(baseDir string) (fsx.FileSystem, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base dir %s: %w", baseDir, err)
	}
	return &LocalFileSystem{baseDir: baseDir}, nil
}

func (l *LocalFileSystem) abs(path string) string {
	return filepath.Join(l.baseDir, filepath.Clean("/"+path))
}

// ReadFile reads a staged file
func (l *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.abs(path))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile stages a file, creating parent directories as needed
func (l *LocalFileSystem) WriteFile(_ context.Context, path string, data []byte) error {
	full := l.abs(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}

// DeleteFile removes a staged file; a missing file is not an error
func (l *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	if err := os.Remove(l.abs(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file %s: %w", path, err)
	}
	return nil
}

// Join builds a relative path from segments
func (l *LocalFileSystem) Join(parts ...string) string {
	return filepath.Join(parts...)
}
