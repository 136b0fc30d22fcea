package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
	"vaultcast/domain"
	"vaultcast/errors"
	"vaultcast/mocks"
	"vaultcast/runtime"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMergeWorker_ProcessesUntilQueueClosed(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := runtime.NewMergeQueue(4, log)
	merger := mocks.NewMockMerger(ctrl)

	var merged atomic.Int32
	merger.EXPECT().Merge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, job domain.MergeJob) (domain.MergedAsset, error) {
			merged.Add(1)
			if job.Session.SessionID == "bad" {
				return domain.MergedAsset{}, &errors.MissingChunkError{SessionID: "bad", Index: 0}
			}
			return domain.MergedAsset{ID: 1}, nil
		}).Times(3)

	for _, id := range []string{"a", "bad", "c"} {
		req.NoError(queue.Schedule(context.Background(), domain.MergeJob{Session: domain.UploadSession{SessionID: id}}))
	}
	queue.Close()

	worker := NewMergeWorker(1, queue, merger, log)
	req.NoError(worker.Run(context.Background()))
	req.Equal(int32(3), merged.Load())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	req.NoError(queue.Drain(ctx))
}

func TestMergeWorker_MergeIgnoresCancellation(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := runtime.NewMergeQueue(1, log)
	merger := mocks.NewMockMerger(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	merger.EXPECT().Merge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(mergeCtx context.Context, job domain.MergeJob) (domain.MergedAsset, error) {
			cancel()
			req.NoError(mergeCtx.Err(), "merge context must not be canceled")
			return domain.MergedAsset{}, nil
		})

	req.NoError(queue.Schedule(context.Background(), domain.MergeJob{}))
	req.NoError(NewMergeWorker(1, queue, merger, log).Run(ctx))
}

func TestMergeWorkers_ParallelAcrossSessions(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := runtime.NewMergeQueue(8, log)
	merger := mocks.NewMockMerger(ctrl)
	var inFlight, peak atomic.Int32
	merger.EXPECT().Merge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, job domain.MergeJob) (domain.MergedAsset, error) {
			current := inFlight.Add(1)
			for {
				old := peak.Load()
				if current <= old || peak.CompareAndSwap(old, current) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			inFlight.Add(-1)
			return domain.MergedAsset{}, nil
		}).Times(4)

	sup := NewSupervisor(log, 0)
	for i := 0; i < 4; i++ {
		sup.Add(NewMergeWorker(i, queue, merger, log))
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, queue.Schedule(context.Background(), domain.MergeJob{Session: domain.UploadSession{SessionID: id}}))
	}
	queue.Close()
	sup.Run(context.Background())

	require.Greater(t, peak.Load(), int32(1))
}
