package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"
	"vaultcast/errors"
	"vaultcast/mocks"

	"github.com/mama165/sdk-go/logs"
	"go.uber.org/mock/gomock"
)

func TestSessionJanitor_PurgesEvictedSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tracker := mocks.NewMockSessionTracker(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)

	tracker.EXPECT().EvictIdle(time.Hour).Return([]string{"s1", "s2"}).MinTimes(1)
	chunks.EXPECT().Purge("s1").Return(nil).MinTimes(1)
	chunks.EXPECT().Purge("s2").Return(errors.NewStorageError("purge chunks", context.DeadlineExceeded)).MinTimes(1)

	janitor := NewSessionJanitor(tracker, chunks, time.Hour, 10*time.Millisecond, logs.GetLoggerFromLevel(slog.LevelDebug))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := janitor.Run(ctx); err != nil {
		t.Fatalf("janitor returned %v", err)
	}
}
