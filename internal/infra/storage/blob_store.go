// Package storage backs the upload sidecar with a blob bucket.
package storage

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"

	"unimarket/internal/domain/service"
)

// blobStore implements FileStore on top of a gocloud blob bucket.
type blobStore struct {
	bucket *blob.Bucket
}

// NewFileStore opens a file-backed bucket rooted at dir, creating the
// directory if it does not exist yet.
func NewFileStore(dir string) (service.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload bucket")
	}

	return &blobStore{bucket: bucket}, nil
}

// NewMemFileStore returns an in-memory FileStore for tests.
func NewMemFileStore() service.FileStore {
	return &blobStore{bucket: memblob.OpenBucket(nil)}
}

func (s *blobStore) Write(ctx context.Context, filename, contentType string, r io.Reader) error {
	opts := &blob.WriterOptions{ContentType: contentType}
	w, err := s.bucket.NewWriter(ctx, filename, opts)
	if err != nil {
		return errors.Wrap(err, "failed to open blob writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()

		return errors.Wrap(err, "failed to write blob")
	}

	return errors.Wrap(w.Close(), "failed to finalize blob")
}

func (s *blobStore) Read(ctx context.Context, filename string) (io.ReadCloser, error) {
	r, err := s.bucket.NewReader(ctx, filename, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open blob reader")
	}

	return r, nil
}

func (s *blobStore) Close() error {
	return s.bucket.Close()
}
