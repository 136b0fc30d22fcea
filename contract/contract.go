//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"io"
	"os"
	"reflect"
	"time"
	"vaultcast/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// ChunkStore keeps raw chunks under <root>/<sessionID>/chunk_<index>.
type ChunkStore interface {
	Put(ctx context.Context, sessionID string, index int, body io.Reader) (int64, error)
	ListIndices(sessionID string) ([]int, error)
	Open(sessionID string, index int) (io.ReadCloser, int64, error)
	Purge(sessionID string) error
}

// AssetStore owns the directory of published files.
type AssetStore interface {
	Create(fileName string) (PendingAsset, error)
	Open(fileName string) (*os.File, os.FileInfo, error)
}

// PendingAsset is invisible to readers until Commit renames it in place.
// Rollback undoes a Commit, Abort releases whatever is left behind.
type PendingAsset interface {
	io.Writer
	Written() int64
	Commit(expected int64) (string, error)
	Rollback() error
	Abort() error
}

type Catalog interface {
	Create(ctx context.Context, asset domain.MergedAsset) (uint64, error)
	Get(ctx context.Context, id uint64) (domain.MergedAsset, error)
	GetByFileName(ctx context.Context, fileName string) (domain.MergedAsset, error)
	List(ctx context.Context, limit int) ([]domain.MergedAsset, error)
	Search(ctx context.Context, query string, limit int) ([]domain.MergedAsset, error)
}

type ContentTypeDetector interface {
	Detect(path string) string
}

// SessionJournal persists session transitions so status survives eviction.
type SessionJournal interface {
	Record(session domain.UploadSession) error
	Get(sessionID string) (domain.UploadSession, error)
}

type SessionTracker interface {
	RegisterChunk(sessionID string, index, totalChunks int, meta domain.SessionMeta) (domain.Registration, error)
	MarkCompleted(sessionID string, assetID uint64) error
	MarkFailed(sessionID, reason string) error
	Snapshot(sessionID string) (domain.UploadSession, error)
	EvictIdle(ttl time.Duration) []string
	ActiveCount() int
}

type MergeScheduler interface {
	Schedule(ctx context.Context, job domain.MergeJob) error
}

type Merger interface {
	Merge(ctx context.Context, job domain.MergeJob) (domain.MergedAsset, error)
}
