package workers

import (
	"context"
	"log/slog"
	"time"
	"vaultcast/contract"
)

// SessionJanitor evicts upload sessions idle for longer than ttl and purges their chunks.
type SessionJanitor struct {
	log      *slog.Logger
	tracker  contract.SessionTracker
	chunks   contract.ChunkStore
	ttl      time.Duration
	interval time.Duration
}

func NewSessionJanitor(tracker contract.SessionTracker, chunks contract.ChunkStore,
	ttl, interval time.Duration, log *slog.Logger) *SessionJanitor {
	return &SessionJanitor{log: log, tracker: tracker, chunks: chunks, ttl: ttl, interval: interval}
}

func (j *SessionJanitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *SessionJanitor) sweep() {
	for _, sessionID := range j.tracker.EvictIdle(j.ttl) {
		if err := j.chunks.Purge(sessionID); err != nil {
			j.log.Warn("Cannot purge expired session", "session_id", sessionID, "error", err)
			continue
		}
		j.log.Info("Expired upload session purged", "session_id", sessionID)
	}
}
