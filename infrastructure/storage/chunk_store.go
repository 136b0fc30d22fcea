package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"vaultcast/errors"
	"vaultcast/validation"
)

const chunkPrefix = "chunk_"

// ChunkStore lays chunks out as <root>/<sessionID>/chunk_<index>.
// A chunk only becomes visible under its final name once fully written.
type ChunkStore struct {
	root string
	log  *slog.Logger
}

func NewChunkStore(root string, log *slog.Logger) (*ChunkStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.NewStorageError("create chunk root", err)
	}
	return &ChunkStore{root: root, log: log}, nil
}

func (s *ChunkStore) Root() string {
	return s.root
}

// Put writes body as the chunk at index, replacing any previous copy.
func (s *ChunkStore) Put(ctx context.Context, sessionID string, index int, body io.Reader) (int64, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, errors.ErrInvalidChunkIndex
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.NewStorageError("create session dir", err)
	}

	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%s%d-*.tmp", chunkPrefix, index))
	if err != nil {
		return 0, errors.NewStorageError("create chunk", err)
	}
	n, err := io.Copy(tmp, body)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, errors.NewStorageError("write chunk", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, chunkName(index))); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, errors.NewStorageError("publish chunk", err)
	}

	s.log.Debug("Chunk stored", "session_id", sessionID, "index", index, "bytes", n)
	return n, nil
}

// ListIndices returns the indices present on disk, sorted.
func (s *ChunkStore) ListIndices(sessionID string) ([]int, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		return []int{}, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("list chunks", err)
	}
	indices := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), chunkPrefix) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), chunkPrefix))
		if err != nil {
			continue
		}
		indices = append(indices, index)
	}
	slices.Sort(indices)
	return indices, nil
}

// Open returns the chunk and its size; ErrChunkNotFound when absent.
func (s *ChunkStore) Open(sessionID string, index int) (io.ReadCloser, int64, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(filepath.Join(dir, chunkName(index)))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, 0, errors.ErrChunkNotFound
	}
	if err != nil {
		return nil, 0, errors.NewStorageError("open chunk", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, errors.NewStorageError("stat chunk", err)
	}
	return f, info.Size(), nil
}

// Purge removes the session directory and everything under it.
func (s *ChunkStore) Purge(sessionID string) error {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.NewStorageError("purge chunks", err)
	}
	return nil
}

func (s *ChunkStore) sessionDir(sessionID string) (string, error) {
	if !validation.IsPathSegment(sessionID) {
		return "", errors.ErrInvalidSessionID
	}
	return filepath.Join(s.root, sessionID), nil
}

func chunkName(index int) string {
	return chunkPrefix + strconv.Itoa(index)
}
