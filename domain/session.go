package domain

import (
	"slices"
	"time"
)

// SessionState of an upload session. Transitions only move forward:
// Receiving -> Merging -> Completed | Failed.
type SessionState int

const (
	Receiving SessionState = iota
	Merging
	Completed
	Failed
)

func (s SessionState) String() string {
	switch s {
	case Receiving:
		return "RECEIVING"
	case Merging:
		return "MERGING"
	case Completed:
		return "COMPLETED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

func (s SessionState) Terminal() bool {
	return s == Completed || s == Failed
}

// SessionMeta is fixed by the first chunk of a session.
type SessionMeta struct {
	OriginalFileName string `json:"original_file_name"`
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
}

// UploadSession is a snapshot of the server-side state of a chunked upload.
type UploadSession struct {
	SessionID     string       `json:"session_id"`
	TotalChunks   int          `json:"total_chunks"`
	Received      []int        `json:"received"`
	State         SessionState `json:"state"`
	Meta          SessionMeta  `json:"meta"`
	CreatedAt     time.Time    `json:"created_at"`
	LastActivity  time.Time    `json:"last_activity"`
	FailureReason string       `json:"failure_reason,omitempty"`
	AssetID       uint64       `json:"asset_id,omitempty"`
}

func (s UploadSession) ReceivedCount() int {
	return len(s.Received)
}

// Missing lists the indices not yet received, in ascending order.
func (s UploadSession) Missing() []int {
	missing := make([]int, 0, s.TotalChunks-len(s.Received))
	for i := 0; i < s.TotalChunks; i++ {
		if _, found := slices.BinarySearch(s.Received, i); !found {
			missing = append(missing, i)
		}
	}
	return missing
}

type RegistrationOutcome int

const (
	// Accepted the chunk was recorded and the session is still incomplete.
	Accepted RegistrationOutcome = iota
	// SessionComplete is returned to exactly one caller per session.
	SessionComplete
	// SessionAlreadyMerging the session left Receiving, nothing was recorded.
	SessionAlreadyMerging
)

func (o RegistrationOutcome) String() string {
	switch o {
	case Accepted:
		return "ACCEPTED"
	case SessionComplete:
		return "SESSION_COMPLETE"
	case SessionAlreadyMerging:
		return "SESSION_ALREADY_MERGING"
	default:
		return "UNKNOWN"
	}
}

type Registration struct {
	Outcome  RegistrationOutcome
	Progress int
	Session  UploadSession
}
