// Package runtime wires the asynchronous side of the server: the merge queue
// consumed by supervised workers. It holds no business rules.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"vaultcast/domain"
	"vaultcast/errors"
)

// MergeQueue is the bounded hand-off between the chunk receiver and the merge workers.
// Schedule blocks while the queue is full, until a slot frees or ctx ends.
type MergeQueue struct {
	mu      sync.RWMutex
	jobs    chan domain.MergeJob
	closed  bool
	pending sync.WaitGroup
	log     *slog.Logger
}

func NewMergeQueue(size int, log *slog.Logger) *MergeQueue {
	return &MergeQueue{jobs: make(chan domain.MergeJob, size), log: log}
}

func (q *MergeQueue) Schedule(ctx context.Context, job domain.MergeJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return errors.ErrMergeQueueClosed
	}

	q.pending.Add(1)
	select {
	case q.jobs <- job:
		q.log.Debug("Merge job queued", "session_id", job.Session.SessionID, "queued", len(q.jobs))
		return nil
	case <-ctx.Done():
		q.pending.Done()
		return fmt.Errorf("%w: %v", errors.ErrMergeQueueFull, ctx.Err())
	}
}

// Jobs is closed by Close once no Schedule call is in flight.
func (q *MergeQueue) Jobs() <-chan domain.MergeJob {
	return q.jobs
}

// Done marks one dequeued job as processed.
func (q *MergeQueue) Done() {
	q.pending.Done()
}

// IsReady fails once the queue stopped accepting jobs.
func (q *MergeQueue) IsReady(_ context.Context) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return errors.ErrMergeQueueClosed
	}
	return nil
}

func (q *MergeQueue) Len() int {
	return len(q.jobs)
}

// Close refuses new jobs. Already queued jobs are still delivered.
func (q *MergeQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}

// Drain waits until every accepted job was processed or ctx ends.
func (q *MergeQueue) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("merge queue not drained: %w", ctx.Err())
	}
}
