package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrEmptyChunk          = fmt.Errorf("chunk is empty")
	ErrPayloadTooLarge     = fmt.Errorf("payload exceeds the maximum upload size")
	ErrUnsupportedExt      = fmt.Errorf("file extension is not allowed")
	ErrDangerousContent    = fmt.Errorf("text contains dangerous content")
	ErrInvalidField        = fmt.Errorf("invalid field")
	ErrInvalidSessionID    = fmt.Errorf("invalid session id")
	ErrInvalidChunkIndex   = fmt.Errorf("chunk index out of range")
	ErrInvalidTotalChunks  = fmt.Errorf("total chunks must be positive")
	ErrTotalChunksMismatch = fmt.Errorf("total chunks differs from the session")
	ErrInvalidFileName     = fmt.Errorf("invalid file name")

	ErrSessionNotFound   = fmt.Errorf("upload session not found")
	ErrIllegalTransition = fmt.Errorf("illegal session state transition")
	ErrChunkNotFound     = fmt.Errorf("chunk not found")
	ErrAssetNotFound     = fmt.Errorf("asset not found")
	ErrRangeNotSatisfied = fmt.Errorf("range not satisfiable")
	ErrMergeQueueClosed  = fmt.Errorf("merge queue is closed")
	ErrMergeQueueFull    = fmt.Errorf("merge queue is full")

	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("failed to generate token")
	ErrUnauthorized       = fmt.Errorf("missing or invalid bearer token")
)

// Reason is the stable machine-readable code returned to clients.
type Reason string

const (
	ReasonEmptyChunk           Reason = "EMPTY_CHUNK"
	ReasonPayloadTooLarge      Reason = "PAYLOAD_TOO_LARGE"
	ReasonUnsupportedExtension Reason = "UNSUPPORTED_EXTENSION"
	ReasonDangerousTitle       Reason = "DANGEROUS_TITLE"
	ReasonDangerousDescription Reason = "DANGEROUS_DESCRIPTION"
	ReasonInvalidField         Reason = "INVALID_FIELD"
	ReasonInvalidChunk         Reason = "INVALID_CHUNK"
	ReasonStorageFailure       Reason = "STORAGE_FAILURE"
	ReasonMergeUnavailable     Reason = "MERGE_UNAVAILABLE"
	ReasonNotFound             Reason = "NOT_FOUND"
	ReasonRangeNotSatisfiable  Reason = "RANGE_NOT_SATISFIABLE"
	ReasonUnauthorized         Reason = "UNAUTHORIZED"
	ReasonInternal             Reason = "INTERNAL"
)

// ValidationError rejects a request before any byte reaches disk.
type ValidationError struct {
	Reason Reason
	Field  string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed on %s (%s): %v", e.Field, e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func NewValidationError(reason Reason, field string, err error) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Err: err}
}

// StorageError wraps any filesystem or database failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// MissingChunkError is fatal for a merge: the session never completes.
type MissingChunkError struct {
	SessionID string
	Index     int
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("session %s: chunk %d is missing", e.SessionID, e.Index)
}

func (e *MissingChunkError) Unwrap() error { return ErrChunkNotFound }

// MergeIntegrityError reports a merged file whose size differs from the sum of its chunks.
type MergeIntegrityError struct {
	SessionID string
	Expected  int64
	Actual    int64
}

func (e *MergeIntegrityError) Error() string {
	return fmt.Sprintf("session %s: merged size %d, expected %d", e.SessionID, e.Actual, e.Expected)
}

// ReasonOf extracts the client-facing reason carried by err.
func ReasonOf(err error) Reason {
	var validationErr *ValidationError
	var storageErr *StorageError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &validationErr):
		return validationErr.Reason
	case stderrors.Is(err, ErrInvalidChunkIndex),
		stderrors.Is(err, ErrInvalidTotalChunks),
		stderrors.Is(err, ErrTotalChunksMismatch):
		return ReasonInvalidChunk
	case stderrors.Is(err, ErrInvalidSessionID), stderrors.Is(err, ErrInvalidFileName):
		return ReasonInvalidField
	case stderrors.Is(err, ErrMergeQueueClosed), stderrors.Is(err, ErrMergeQueueFull):
		return ReasonMergeUnavailable
	case stderrors.As(err, &storageErr):
		return ReasonStorageFailure
	case stderrors.Is(err, ErrAssetNotFound), stderrors.Is(err, ErrSessionNotFound):
		return ReasonNotFound
	case stderrors.Is(err, ErrRangeNotSatisfied):
		return ReasonRangeNotSatisfiable
	case stderrors.Is(err, ErrUnauthorized), stderrors.Is(err, ErrInvalidCredentials):
		return ReasonUnauthorized
	default:
		return ReasonInternal
	}
}
