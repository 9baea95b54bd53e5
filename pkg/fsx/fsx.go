package fsx

import "context"

// FileReader reads files from a storage backend
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem abstracts a file storage backend (object store or local disk)
type FileSystem interface {
	FileReader

	// WriteFile stores data at path, overwriting any existing file
	WriteFile(ctx context.Context, path string, data []byte) error

	// DeleteFile removes the file at path; removing a missing file is not an error
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from segments
	Join(parts ...string) string
}
