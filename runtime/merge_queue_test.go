package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func job(id string) domain.MergeJob {
	return domain.MergeJob{Session: domain.UploadSession{SessionID: id}}
}

func TestMergeQueue_ScheduleAndDrain(t *testing.T) {
	req := require.New(t)
	q := NewMergeQueue(2, logs.GetLoggerFromLevel(slog.LevelDebug))

	req.NoError(q.Schedule(context.Background(), job("a")))
	req.NoError(q.Schedule(context.Background(), job("b")))
	req.Equal(2, q.Len())

	go func() {
		for range q.Jobs() {
			q.Done()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(q.Drain(ctx))
	q.Close()
}

func TestMergeQueue_FullQueueHonorsContext(t *testing.T) {
	req := require.New(t)
	q := NewMergeQueue(1, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(q.Schedule(context.Background(), job("a")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Schedule(ctx, job("b"))
	req.ErrorIs(err, errors.ErrMergeQueueFull)

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer drainCancel()
	req.Error(q.Drain(drainCtx), "job a was never processed")
}

func TestMergeQueue_ClosedRejects(t *testing.T) {
	req := require.New(t)
	q := NewMergeQueue(1, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(q.Schedule(context.Background(), job("a")))
	req.NoError(q.IsReady(context.Background()))
	q.Close()
	q.Close()
	req.ErrorIs(q.IsReady(context.Background()), errors.ErrMergeQueueClosed)

	req.ErrorIs(q.Schedule(context.Background(), job("b")), errors.ErrMergeQueueClosed)

	got, ok := <-q.Jobs()
	req.True(ok, "queued jobs survive Close")
	req.Equal("a", got.Session.SessionID)
	_, ok = <-q.Jobs()
	req.False(ok)
}
