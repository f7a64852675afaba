package blobstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"topup/internal/adapters/out/blobstore"
	"topup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *blobstore.FilesystemStore {
	t.Helper()
	store, err := blobstore.NewFilesystemStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)
	return store
}

func TestFilesystemStore_SaveReadOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Save(ctx, "proof.jpg", []byte("first")))
	require.NoError(t, store.Save(ctx, "proof.jpg", []byte("second")))

	data, err := store.Read(ctx, "proof.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	exists, err := store.Exists(ctx, "proof.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFilesystemStore_ReadMissing(t *testing.T) {
	_, err := newStore(t).Read(context.Background(), "missing.png")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestFilesystemStore_Stat(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "proof.png", []byte("12345")))

	info, err := store.Stat(ctx, "proof.png")
	require.NoError(t, err)
	assert.Equal(t, "proof.png", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.ModTime.IsZero())

	_, err = store.Stat(ctx, "missing.png")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestFilesystemStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "a.png", []byte("x")))

	require.NoError(t, store.Delete(ctx, "a.png"))
	require.NoError(t, store.Delete(ctx, "a.png"))

	exists, err := store.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFilesystemStore_ListSkipsDirectoriesAndTempFiles(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "a.png", []byte("aa")))
	require.NoError(t, store.Save(ctx, "b.gif", []byte("b")))
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ".upload-123"), []byte("partial"), 0o600))

	blobs, err := store.List(ctx)

	require.NoError(t, err)
	names := make(map[string]int64)
	for _, b := range blobs {
		names[b.Name] = b.Size
		assert.False(t, b.ModTime.IsZero())
	}
	assert.Equal(t, map[string]int64{"a.png": 2, "b.gif": 1}, names)
}

func TestFilesystemStore_RejectsPathNames(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	for _, name := range []string{"", ".", "..", "../etc/passwd", "dir/file.png", `dir\file.png`} {
		t.Run(name, func(t *testing.T) {
			err := store.Save(ctx, name, []byte("x"))
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestFilesystemStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newStore(t).Save(ctx, "a.png", []byte("x"))

	require.ErrorIs(t, err, context.Canceled)
}
