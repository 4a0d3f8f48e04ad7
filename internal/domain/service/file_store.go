package service

import (
	"context"
	"io"
)

// FileStore abstracts the blob bucket backing the upload sidecar.
type FileStore interface {
	// Write stores the reader's bytes under the given filename, silently
	// overwriting any existing object with the same name.
	Write(ctx context.Context, filename, contentType string, r io.Reader) error

	// Read opens the stored object for reading. The caller closes it.
	Read(ctx context.Context, filename string) (io.ReadCloser, error)

	// Close releases the underlying bucket.
	Close() error
}
