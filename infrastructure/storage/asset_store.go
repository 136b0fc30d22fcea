package storage

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"vaultcast/contract"
	"vaultcast/errors"
	"vaultcast/validation"

	"github.com/google/uuid"
)

// AssetStore holds published files. Files in progress live next to their
// final name as hidden .<name>.<uuid>.part files and are never served.
type AssetStore struct {
	root string
	log  *slog.Logger
}

func NewAssetStore(root string, log *slog.Logger) (*AssetStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.NewStorageError("create asset root", err)
	}
	return &AssetStore{root: root, log: log}, nil
}

func (s *AssetStore) Root() string {
	return s.root
}

// PublishedName is the on-disk name a client supplied file name maps to.
func PublishedName(fileName string) (string, error) {
	name := strings.TrimLeft(validation.CleanFileName(fileName), ".")
	if name == "" {
		return "", errors.ErrInvalidFileName
	}
	return name, nil
}

func (s *AssetStore) Create(fileName string) (contract.PendingAsset, error) {
	name, err := PublishedName(fileName)
	if err != nil {
		return nil, err
	}
	tmpPath := filepath.Join(s.root, fmt.Sprintf(".%s.%s.part", name, uuid.NewString()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.NewStorageError("create asset", err)
	}
	return &pendingAsset{
		file:      f,
		name:      name,
		tmpPath:   tmpPath,
		finalPath: filepath.Join(s.root, name),
		log:       s.log,
	}, nil
}

// Open returns a published file; ErrAssetNotFound for unknown or in-progress names.
func (s *AssetStore) Open(fileName string) (*os.File, os.FileInfo, error) {
	if !validation.IsPathSegment(fileName) || strings.HasPrefix(fileName, ".") {
		return nil, nil, errors.ErrAssetNotFound
	}
	f, err := os.Open(filepath.Join(s.root, fileName))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil, errors.ErrAssetNotFound
	}
	if err != nil {
		return nil, nil, errors.NewStorageError("open asset", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.NewStorageError("stat asset", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, errors.ErrAssetNotFound
	}
	return f, info, nil
}

type pendingAsset struct {
	file      *os.File
	name      string
	tmpPath   string
	finalPath string
	// backupPath hard link to the file the commit replaced, empty when there was none
	backupPath string
	written    int64
	done       bool
	committed  bool
	log        *slog.Logger
}

func (p *pendingAsset) Write(b []byte) (int, error) {
	n, err := p.file.Write(b)
	p.written += int64(n)
	return n, err
}

func (p *pendingAsset) Written() int64 {
	return p.written
}

// Commit flushes the temporary file, checks its size and renames it to the final name.
func (p *pendingAsset) Commit(expected int64) (string, error) {
	if p.done {
		return "", errors.NewStorageError("commit asset", fs.ErrClosed)
	}
	p.done = true

	err := p.file.Sync()
	if closeErr := p.file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		p.cleanup()
		return "", errors.NewStorageError("flush asset", err)
	}
	info, err := os.Stat(p.tmpPath)
	if err != nil {
		p.cleanup()
		return "", errors.NewStorageError("stat asset", err)
	}
	if info.Size() != expected {
		p.cleanup()
		return "", &errors.MergeIntegrityError{Expected: expected, Actual: info.Size()}
	}
	if err := p.keepPrevious(); err != nil {
		p.cleanup()
		return "", err
	}
	if err := os.Rename(p.tmpPath, p.finalPath); err != nil {
		p.cleanup()
		_ = p.dropPrevious()
		return "", errors.NewStorageError("publish asset", err)
	}
	p.committed = true
	return p.finalPath, nil
}

// keepPrevious hard links the file currently published under the same name,
// so Rollback can bring it back.
func (p *pendingAsset) keepPrevious() error {
	backup := filepath.Join(filepath.Dir(p.finalPath), fmt.Sprintf(".%s.%s.prev", p.name, uuid.NewString()))
	err := os.Link(p.finalPath, backup)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.NewStorageError("preserve previous asset", err)
	}
	p.backupPath = backup
	return nil
}

func (p *pendingAsset) dropPrevious() error {
	if p.backupPath == "" {
		return nil
	}
	if err := os.Remove(p.backupPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		p.log.Warn("Cannot remove previous asset copy", "path", p.backupPath, "error", err)
		return err
	}
	p.backupPath = ""
	return nil
}

// Rollback withdraws a committed file: the file it replaced is published
// again, or the name disappears when there was none. No-op before Commit.
func (p *pendingAsset) Rollback() error {
	if !p.committed {
		return nil
	}
	p.committed = false
	if p.backupPath != "" {
		if err := os.Rename(p.backupPath, p.finalPath); err != nil {
			return errors.NewStorageError("restore previous asset", err)
		}
		p.backupPath = ""
		p.log.Warn("Previous asset restored", "path", p.finalPath)
		return nil
	}
	if err := os.Remove(p.finalPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewStorageError("withdraw asset", err)
	}
	p.log.Warn("Published asset withdrawn", "path", p.finalPath)
	return nil
}

// Abort discards the temporary file before Commit. After Commit it releases
// the copy of the replaced file and Rollback is no longer possible.
func (p *pendingAsset) Abort() error {
	if p.done {
		p.committed = false
		return p.dropPrevious()
	}
	p.done = true
	_ = p.file.Close()
	return p.cleanup()
}

func (p *pendingAsset) cleanup() error {
	if err := os.Remove(p.tmpPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		p.log.Warn("Cannot remove temporary asset", "path", p.tmpPath, "error", err)
		return err
	}
	return nil
}
