package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"vaultcast/errors"

	"github.com/stretchr/testify/require"
)

func TestChunkStore_PutOpenList(t *testing.T) {
	req := require.New(t)
	store, err := NewChunkStore(t.TempDir(), testLogger())
	req.NoError(err)
	ctx := context.Background()

	n, err := store.Put(ctx, "s1", 1, strings.NewReader("World!"))
	req.NoError(err)
	req.Equal(int64(6), n)
	_, err = store.Put(ctx, "s1", 0, strings.NewReader("Hello "))
	req.NoError(err)

	indices, err := store.ListIndices("s1")
	req.NoError(err)
	req.Equal([]int{0, 1}, indices)

	rc, size, err := store.Open("s1", 0)
	req.NoError(err)
	defer rc.Close()
	req.Equal(int64(6), size)
	content, err := io.ReadAll(rc)
	req.NoError(err)
	req.Equal("Hello ", string(content))

	req.FileExists(filepath.Join(store.Root(), "s1", "chunk_0"))
}

func TestChunkStore_PutReplacesExistingChunk(t *testing.T) {
	req := require.New(t)
	store, err := NewChunkStore(t.TempDir(), testLogger())
	req.NoError(err)

	_, err = store.Put(context.Background(), "s1", 0, strings.NewReader("first version"))
	req.NoError(err)
	_, err = store.Put(context.Background(), "s1", 0, strings.NewReader("second"))
	req.NoError(err)

	rc, size, err := store.Open("s1", 0)
	req.NoError(err)
	defer rc.Close()
	req.Equal(int64(6), size)

	entries, err := os.ReadDir(filepath.Join(store.Root(), "s1"))
	req.NoError(err)
	req.Len(entries, 1)
}

func TestChunkStore_OpenMissing(t *testing.T) {
	store, err := NewChunkStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	_, _, err = store.Open("unknown", 3)
	require.ErrorIs(t, err, errors.ErrChunkNotFound)

	indices, err := store.ListIndices("unknown")
	require.NoError(t, err)
	require.Empty(t, indices)
}

func TestChunkStore_RejectsTraversal(t *testing.T) {
	store, err := NewChunkStore(t.TempDir(), testLogger())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "..", 0, strings.NewReader("x"))
	require.ErrorIs(t, err, errors.ErrInvalidSessionID)
	_, err = store.Put(context.Background(), "a/b", 0, strings.NewReader("x"))
	require.ErrorIs(t, err, errors.ErrInvalidSessionID)
	require.ErrorIs(t, store.Purge("../x"), errors.ErrInvalidSessionID)
}

func TestChunkStore_CanceledContext(t *testing.T) {
	store, err := NewChunkStore(t.TempDir(), testLogger())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, "s1", 0, strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestChunkStore_Purge(t *testing.T) {
	req := require.New(t)
	store, err := NewChunkStore(t.TempDir(), testLogger())
	req.NoError(err)

	_, err = store.Put(context.Background(), "s1", 0, strings.NewReader("x"))
	req.NoError(err)
	req.NoError(store.Purge("s1"))
	req.NoDirExists(filepath.Join(store.Root(), "s1"))
	req.NoError(store.Purge("s1"))
}
