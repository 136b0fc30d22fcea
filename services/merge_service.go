package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"vaultcast/contract"
	"vaultcast/domain"
	"vaultcast/errors"
)

// MergeService concatenates the chunks of a complete session into one published asset.
type MergeService struct {
	chunks    contract.ChunkStore
	tracker   contract.SessionTracker
	publisher *AssetPublisher
	log       *slog.Logger
}

func NewMergeService(chunks contract.ChunkStore, tracker contract.SessionTracker,
	publisher *AssetPublisher, log *slog.Logger) *MergeService {
	return &MergeService{chunks: chunks, tracker: tracker, publisher: publisher, log: log}
}

// Merge publishes the session's chunks in index order. On success chunks are
// purged and the session is Completed, otherwise it is Failed and chunks are kept.
func (s *MergeService) Merge(ctx context.Context, job domain.MergeJob) (asset domain.MergedAsset, err error) {
	session := job.Session
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
			s.fail(session, err)
		}
	}()

	asset, err = s.publisher.Publish(ctx, session.SessionID, session.Meta, func(w io.Writer) (int64, error) {
		return s.concatenate(session, w)
	})
	if err != nil {
		s.fail(session, err)
		return domain.MergedAsset{}, err
	}

	if err := s.chunks.Purge(session.SessionID); err != nil {
		s.log.Warn("Cannot purge merged chunks", "session_id", session.SessionID, "error", err)
	}
	if err := s.tracker.MarkCompleted(session.SessionID, asset.ID); err != nil {
		s.log.Warn("Cannot complete session", "session_id", session.SessionID, "error", err)
	}
	s.log.Info("Merge completed",
		"session_id", session.SessionID,
		"asset_id", asset.ID,
		"file_name", asset.FileName,
		"size", asset.SizeBytes)
	return asset, nil
}

func (s *MergeService) concatenate(session domain.UploadSession, w io.Writer) (int64, error) {
	var expected int64
	for index := 0; index < session.TotalChunks; index++ {
		rc, size, err := s.chunks.Open(session.SessionID, index)
		if stderrors.Is(err, errors.ErrChunkNotFound) {
			return 0, &errors.MissingChunkError{SessionID: session.SessionID, Index: index}
		}
		if err != nil {
			return 0, err
		}
		n, err := io.Copy(w, rc)
		_ = rc.Close()
		if err != nil {
			return 0, errors.NewStorageError(fmt.Sprintf("append chunk %d", index), err)
		}
		if n != size {
			return 0, &errors.MergeIntegrityError{SessionID: session.SessionID, Expected: expected + size, Actual: expected + n}
		}
		expected += size
	}
	return expected, nil
}

func (s *MergeService) fail(session domain.UploadSession, cause error) {
	s.log.Error("Merge failed", "session_id", session.SessionID, "error", cause)
	if err := s.tracker.MarkFailed(session.SessionID, cause.Error()); err != nil {
		s.log.Warn("Cannot fail session", "session_id", session.SessionID, "error", err)
	}
}
