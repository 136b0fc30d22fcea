package services

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
	"vaultcast/contract"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/samber/lo"
)

// SessionTracker records which chunks each session has received and decides,
// exactly once per session, when it is complete. Each session has its own
// mutex so unrelated sessions never wait on each other.
type SessionTracker struct {
	mu       sync.RWMutex // protects the map only, never held with an entry lock
	sessions map[string]*sessionEntry
	journal  contract.SessionJournal
	log      *slog.Logger
	now      func() time.Time
}

type sessionEntry struct {
	mu        sync.Mutex
	session   domain.UploadSession
	received  map[int]struct{}
	journaled bool
	evicted   bool
}

func NewSessionTracker(journal contract.SessionJournal, log *slog.Logger) *SessionTracker {
	return &SessionTracker{
		sessions: make(map[string]*sessionEntry),
		journal:  journal,
		log:      log,
		now:      time.Now,
	}
}

// RegisterChunk records index for sessionID, creating the session on first sight.
// The caller that fills the last missing index gets SessionComplete and owns the merge.
func (t *SessionTracker) RegisterChunk(sessionID string, index, totalChunks int, meta domain.SessionMeta) (domain.Registration, error) {
	if totalChunks <= 0 {
		return domain.Registration{}, errors.ErrInvalidTotalChunks
	}
	if index < 0 || index >= totalChunks {
		return domain.Registration{}, fmt.Errorf("%w: %d not in [0,%d)", errors.ErrInvalidChunkIndex, index, totalChunks)
	}

	for {
		entry, closed, ok := t.getOrCreate(sessionID, totalChunks, meta)
		if !ok {
			// the id is already closed, a late resend must not reopen it
			return domain.Registration{
				Outcome:  domain.SessionAlreadyMerging,
				Progress: closed.ReceivedCount(),
				Session:  closed,
			}, nil
		}
		entry.mu.Lock()
		if entry.evicted {
			// lost a race with eviction, retry on a fresh entry
			entry.mu.Unlock()
			continue
		}
		registration, err := t.register(entry, index, totalChunks)
		entry.mu.Unlock()
		return registration, err
	}
}

func (t *SessionTracker) register(entry *sessionEntry, index, totalChunks int) (domain.Registration, error) {
	s := &entry.session
	if s.State != domain.Receiving {
		return domain.Registration{
			Outcome:  domain.SessionAlreadyMerging,
			Progress: len(entry.received),
			Session:  entry.snapshot(),
		}, nil
	}
	if totalChunks != s.TotalChunks {
		return domain.Registration{}, fmt.Errorf("%w: got %d, session has %d", errors.ErrTotalChunksMismatch, totalChunks, s.TotalChunks)
	}

	entry.received[index] = struct{}{}
	s.LastActivity = t.now()
	progress := len(entry.received)

	if !entry.journaled {
		entry.journaled = true
		t.record(entry)
	}

	if progress < s.TotalChunks {
		return domain.Registration{Outcome: domain.Accepted, Progress: progress}, nil
	}

	s.State = domain.Merging
	t.record(entry)
	t.log.Info("Upload session complete", "session_id", s.SessionID, "total_chunks", s.TotalChunks)
	return domain.Registration{
		Outcome:  domain.SessionComplete,
		Progress: progress,
		Session:  entry.snapshot(),
	}, nil
}

// getOrCreate returns false with the journaled session when sessionID has left
// memory in a state other than Receiving. finish journals before it removes the
// entry, so a miss in the map is always checked against the final record.
func (t *SessionTracker) getOrCreate(sessionID string, totalChunks int, meta domain.SessionMeta) (*sessionEntry, domain.UploadSession, bool) {
	t.mu.RLock()
	entry, ok := t.sessions[sessionID]
	t.mu.RUnlock()
	if ok {
		return entry, domain.UploadSession{}, true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if entry, ok := t.sessions[sessionID]; ok {
		return entry, domain.UploadSession{}, true
	}
	if closed, found := t.journaled(sessionID); found && closed.State != domain.Receiving {
		return nil, closed, false
	}
	now := t.now()
	entry = &sessionEntry{
		session: domain.UploadSession{
			SessionID:    sessionID,
			TotalChunks:  totalChunks,
			State:        domain.Receiving,
			Meta:         meta,
			CreatedAt:    now,
			LastActivity: now,
		},
		received: make(map[int]struct{}, totalChunks),
	}
	t.sessions[sessionID] = entry
	return entry, domain.UploadSession{}, true
}

func (t *SessionTracker) journaled(sessionID string) (domain.UploadSession, bool) {
	if t.journal == nil {
		return domain.UploadSession{}, false
	}
	session, err := t.journal.Get(sessionID)
	if err != nil {
		if !stderrors.Is(err, errors.ErrSessionNotFound) {
			t.log.Warn("Cannot read session journal", "session_id", sessionID, "error", err)
		}
		return domain.UploadSession{}, false
	}
	return session, true
}

// MarkCompleted Merging -> Completed, the session leaves memory.
func (t *SessionTracker) MarkCompleted(sessionID string, assetID uint64) error {
	return t.finish(sessionID, func(s *domain.UploadSession) {
		s.State = domain.Completed
		s.AssetID = assetID
	})
}

// MarkFailed Merging -> Failed, the session leaves memory.
func (t *SessionTracker) MarkFailed(sessionID, reason string) error {
	return t.finish(sessionID, func(s *domain.UploadSession) {
		s.State = domain.Failed
		s.FailureReason = reason
	})
}

func (t *SessionTracker) finish(sessionID string, apply func(s *domain.UploadSession)) error {
	t.mu.RLock()
	entry, ok := t.sessions[sessionID]
	t.mu.RUnlock()
	if !ok {
		return errors.ErrSessionNotFound
	}

	entry.mu.Lock()
	if entry.evicted {
		entry.mu.Unlock()
		return errors.ErrSessionNotFound
	}
	if entry.session.State != domain.Merging {
		state := entry.session.State
		entry.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", errors.ErrIllegalTransition, sessionID, state)
	}
	apply(&entry.session)
	entry.session.LastActivity = t.now()
	entry.evicted = true
	t.record(entry)
	entry.mu.Unlock()

	t.remove(sessionID, entry)
	return nil
}

// Snapshot returns the in-memory state, or the journaled one once the session left memory.
func (t *SessionTracker) Snapshot(sessionID string) (domain.UploadSession, error) {
	t.mu.RLock()
	entry, ok := t.sessions[sessionID]
	t.mu.RUnlock()
	if ok {
		entry.mu.Lock()
		evicted := entry.evicted
		snapshot := entry.snapshot()
		entry.mu.Unlock()
		if !evicted {
			return snapshot, nil
		}
	}
	if t.journal == nil {
		return domain.UploadSession{}, errors.ErrSessionNotFound
	}
	session, err := t.journal.Get(sessionID)
	if err != nil {
		return domain.UploadSession{}, err
	}
	return session, nil
}

// EvictIdle drops Receiving sessions with no activity for ttl and returns their ids.
// Merging sessions are never evicted.
func (t *SessionTracker) EvictIdle(ttl time.Duration) []string {
	t.mu.RLock()
	entries := lo.Values(t.sessions)
	t.mu.RUnlock()

	cutoff := t.now().Add(-ttl)
	var evicted []string
	for _, entry := range entries {
		entry.mu.Lock()
		idle := !entry.evicted &&
			entry.session.State == domain.Receiving &&
			entry.session.LastActivity.Before(cutoff)
		if idle {
			entry.evicted = true
			entry.session.State = domain.Failed
			entry.session.FailureReason = "session expired"
			t.record(entry)
		}
		sessionID := entry.session.SessionID
		entry.mu.Unlock()

		if idle {
			t.remove(sessionID, entry)
			evicted = append(evicted, sessionID)
		}
	}
	if len(evicted) > 0 {
		t.log.Info("Evicted idle upload sessions", "count", len(evicted))
	}
	slices.Sort(evicted)
	return evicted
}

func (t *SessionTracker) ActiveCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}

func (t *SessionTracker) remove(sessionID string, entry *sessionEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if current, ok := t.sessions[sessionID]; ok && current == entry {
		delete(t.sessions, sessionID)
	}
}

// record must be called with entry.mu held.
func (t *SessionTracker) record(entry *sessionEntry) {
	if t.journal == nil {
		return
	}
	if err := t.journal.Record(entry.snapshot()); err != nil {
		var storageErr *errors.StorageError
		if stderrors.As(err, &storageErr) {
			t.log.Warn("Cannot journal session", "session_id", entry.session.SessionID, "op", storageErr.Op, "error", storageErr.Err)
			return
		}
		t.log.Warn("Cannot journal session", "session_id", entry.session.SessionID, "error", err)
	}
}

func (e *sessionEntry) snapshot() domain.UploadSession {
	s := e.session
	s.Received = lo.Keys(e.received)
	slices.Sort(s.Received)
	return s
}
