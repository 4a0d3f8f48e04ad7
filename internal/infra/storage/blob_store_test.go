package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemFileStoreRoundTrip(t *testing.T) {
	store := NewMemFileStore()
	defer store.Close()
	ctx := context.Background()

	err := store.Write(ctx, "photo.webp", "image/webp", strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	r, err := store.Read(ctx, "photo.webp")
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))
}

func TestMemFileStoreOverwrite(t *testing.T) {
	store := NewMemFileStore()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "photo.webp", "image/webp", strings.NewReader("first")))
	require.NoError(t, store.Write(ctx, "photo.webp", "image/webp", strings.NewReader("second")))

	r, err := store.Read(ctx, "photo.webp")
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestMemFileStoreReadMissing(t *testing.T) {
	store := NewMemFileStore()
	defer store.Close()

	_, err := store.Read(context.Background(), "absent.webp")
	assert.Error(t, err)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Write(ctx, "a.webp", "image/webp", strings.NewReader("bytes")))

	r, err := store.Read(ctx, "a.webp")
	require.NoError(t, err)
	defer r.Close()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(content))
}
