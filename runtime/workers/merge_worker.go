package workers

import (
	"context"
	"log/slog"
	"vaultcast/contract"
	"vaultcast/domain"
)

// JobSource is the consuming side of the merge queue.
type JobSource interface {
	Jobs() <-chan domain.MergeJob
	Done()
}

// MergeWorker consumes merge jobs one at a time. A started merge is never
// interrupted: it runs on a context detached from cancellation.
type MergeWorker struct {
	id     int
	log    *slog.Logger
	source JobSource
	merger contract.Merger
}

func NewMergeWorker(id int, source JobSource, merger contract.Merger, log *slog.Logger) *MergeWorker {
	return &MergeWorker{id: id, source: source, merger: merger, log: log.With("merge_worker", id)}
}

// Run returns nil once the queue is closed and drained, or when ctx ends.
func (w *MergeWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job, ok := <-w.source.Jobs():
			if !ok {
				w.log.Debug("Merge queue closed")
				return nil
			}
			w.process(context.WithoutCancel(ctx), job)
		}
	}
}

func (w *MergeWorker) process(ctx context.Context, job domain.MergeJob) {
	defer w.source.Done()
	w.log.Debug("Merge started", "session_id", job.Session.SessionID, "total_chunks", job.Session.TotalChunks)
	if _, err := w.merger.Merge(ctx, job); err != nil {
		// already logged and recorded by the merger
		w.log.Debug("Merge ended with error", "session_id", job.Session.SessionID)
	}
}
