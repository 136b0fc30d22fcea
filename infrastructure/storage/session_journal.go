package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/dgraph-io/badger/v4"
)

const sessionPrefix = "session:"

// SessionJournal keeps the last known state of every session in Badger.
type SessionJournal struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionJournal(db *badger.DB, log *slog.Logger) *SessionJournal {
	return &SessionJournal{db: db, log: log}
}

func (j *SessionJournal) Record(session domain.UploadSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(session.SessionID), data)
	})
	if err != nil {
		return errors.NewStorageError("record session", err)
	}
	return nil
}

func (j *SessionJournal) Get(sessionID string) (domain.UploadSession, error) {
	var session domain.UploadSession
	err := j.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(sessionID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &session)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.UploadSession{}, errors.ErrSessionNotFound
	}
	if err != nil {
		return domain.UploadSession{}, errors.NewStorageError("read session", err)
	}
	return session, nil
}

// List returns every journaled session, ordered by id.
func (j *SessionJournal) List() ([]domain.UploadSession, error) {
	var sessions []domain.UploadSession
	prefix := []byte(sessionPrefix)
	err := j.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var session domain.UploadSession
				if err := json.Unmarshal(v, &session); err != nil {
					return fmt.Errorf("failed to unmarshal session: %w", err)
				}
				sessions = append(sessions, session)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStorageError("list sessions", err)
	}
	return sessions, nil
}

// FailInterrupted marks every journaled session that never reached a terminal
// state as Failed. Called once at startup, before any chunk is accepted.
func (j *SessionJournal) FailInterrupted(reason string, now time.Time) ([]string, error) {
	sessions, err := j.List()
	if err != nil {
		return nil, err
	}
	var failed []string
	for _, session := range sessions {
		if session.State.Terminal() {
			continue
		}
		session.State = domain.Failed
		session.FailureReason = reason
		session.LastActivity = now
		if err := j.Record(session); err != nil {
			return failed, err
		}
		j.log.Warn("Session interrupted by restart", "session_id", session.SessionID, "received", session.ReceivedCount(), "total", session.TotalChunks)
		failed = append(failed, session.SessionID)
	}
	return failed, nil
}

func sessionKey(sessionID string) []byte {
	return []byte(sessionPrefix + sessionID)
}
