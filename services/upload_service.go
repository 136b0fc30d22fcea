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
	"vaultcast/validation"
)

// UploadService receives chunks and whole files.
// A chunk is durable on disk before it is registered, so a complete session
// always has every chunk present when its merge starts.
type UploadService struct {
	validator *validation.Validator
	chunks    contract.ChunkStore
	tracker   contract.SessionTracker
	scheduler contract.MergeScheduler
	publisher *AssetPublisher
	log       *slog.Logger
}

func NewUploadService(validator *validation.Validator, chunks contract.ChunkStore,
	tracker contract.SessionTracker, scheduler contract.MergeScheduler,
	publisher *AssetPublisher, log *slog.Logger) *UploadService {
	return &UploadService{
		validator: validator,
		chunks:    chunks,
		tracker:   tracker,
		scheduler: scheduler,
		publisher: publisher,
		log:       log,
	}
}

func (s *UploadService) ReceiveChunk(ctx context.Context, req domain.ChunkUploadRequest) (domain.ChunkReceipt, error) {
	if err := s.validator.ValidateChunk(req); err != nil {
		s.log.Debug("Chunk rejected",
			"session_id", req.SessionID,
			"chunk_index", req.ChunkIndex,
			"reason", errors.ReasonOf(err),
			"title", s.validator.Censor(req.Title))
		return domain.ChunkReceipt{}, err
	}

	receipt := domain.ChunkReceipt{SessionID: req.SessionID, TotalChunks: req.TotalChunks}
	if current, err := s.tracker.Snapshot(req.SessionID); err == nil {
		switch {
		case current.State != domain.Receiving:
			receipt.Outcome = domain.SessionAlreadyMerging
			receipt.UploadedChunks = current.ReceivedCount()
			receipt.TotalChunks = current.TotalChunks
			return receipt, nil
		case current.TotalChunks != req.TotalChunks:
			return domain.ChunkReceipt{}, fmt.Errorf("%w: got %d, session has %d", errors.ErrTotalChunksMismatch, req.TotalChunks, current.TotalChunks)
		}
	}

	if _, err := s.chunks.Put(ctx, req.SessionID, req.ChunkIndex, req.Body); err != nil {
		return domain.ChunkReceipt{}, err
	}

	reg, err := s.tracker.RegisterChunk(req.SessionID, req.ChunkIndex, req.TotalChunks, req.Meta())
	if err != nil {
		return domain.ChunkReceipt{}, err
	}
	receipt.Outcome = reg.Outcome
	receipt.UploadedChunks = reg.Progress

	switch reg.Outcome {
	case domain.SessionComplete:
		if err := s.scheduler.Schedule(ctx, domain.MergeJob{Session: reg.Session}); err != nil {
			s.log.Error("Cannot schedule merge", "session_id", req.SessionID, "error", err)
			if markErr := s.tracker.MarkFailed(req.SessionID, err.Error()); markErr != nil {
				s.log.Warn("Cannot fail session", "session_id", req.SessionID, "error", markErr)
			}
			return domain.ChunkReceipt{}, err
		}
		s.log.Info("Merge scheduled", "session_id", req.SessionID, "file_name", req.OriginalFileName)
	case domain.SessionAlreadyMerging:
		if reg.Session.State == domain.Completed {
			// published and purged while this chunk was being written
			if err := s.chunks.Purge(req.SessionID); err != nil {
				s.log.Warn("Cannot drop late chunk", "session_id", req.SessionID, "error", err)
			}
		}
		receipt.TotalChunks = reg.Session.TotalChunks
	case domain.Accepted:
		s.log.Debug("Chunk accepted",
			"session_id", req.SessionID,
			"chunk_index", req.ChunkIndex,
			"progress", fmt.Sprintf("%d/%d", reg.Progress, req.TotalChunks))
	}
	return receipt, nil
}

// UploadFile publishes a whole file synchronously.
func (s *UploadService) UploadFile(ctx context.Context, req domain.FileUploadRequest) (domain.MergedAsset, error) {
	if err := s.validator.ValidateFile(req); err != nil {
		return domain.MergedAsset{}, err
	}
	asset, err := s.publisher.Publish(ctx, "", req.Meta(), func(w io.Writer) (int64, error) {
		n, err := io.Copy(w, req.Body)
		if err != nil {
			return 0, errors.NewStorageError("write file", err)
		}
		if n != req.Size {
			return 0, &errors.MergeIntegrityError{Expected: req.Size, Actual: n}
		}
		return n, nil
	})
	if err != nil {
		s.log.Error("Upload failed", "file_name", req.OriginalFileName, "error", err)
		return domain.MergedAsset{}, err
	}
	s.log.Info("File uploaded", "asset_id", asset.ID, "file_name", asset.FileName, "size", asset.SizeBytes)
	return asset, nil
}

// SessionStatus combines the tracked state with what is actually on disk.
func (s *UploadService) SessionStatus(sessionID string) (domain.UploadSession, []int, error) {
	session, err := s.tracker.Snapshot(sessionID)
	if err != nil {
		return domain.UploadSession{}, nil, err
	}
	onDisk, err := s.chunks.ListIndices(sessionID)
	if err != nil && !stderrors.Is(err, errors.ErrInvalidSessionID) {
		return domain.UploadSession{}, nil, err
	}
	return session, onDisk, nil
}
