package services

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"vaultcast/contract"
	"vaultcast/domain"
	"vaultcast/errors"
	"vaultcast/validation"

	"github.com/abadojack/whatlanggo"
)

// AssetPublisher writes a file through the atomic publish path and registers it in the catalog.
type AssetPublisher struct {
	assets   contract.AssetStore
	catalog  contract.Catalog
	detector contract.ContentTypeDetector
	log      *slog.Logger
	now      func() time.Time
}

func NewAssetPublisher(assets contract.AssetStore, catalog contract.Catalog,
	detector contract.ContentTypeDetector, log *slog.Logger) *AssetPublisher {
	return &AssetPublisher{
		assets:   assets,
		catalog:  catalog,
		detector: detector,
		log:      log,
		now:      time.Now,
	}
}

// fillFunc streams the content into w and returns the byte count it expects to have written.
type fillFunc func(w io.Writer) (int64, error)

func (p *AssetPublisher) Publish(ctx context.Context, sessionID string, meta domain.SessionMeta, fill fillFunc) (domain.MergedAsset, error) {
	pending, err := p.assets.Create(meta.OriginalFileName)
	if err != nil {
		return domain.MergedAsset{}, err
	}
	defer func() { _ = pending.Abort() }()

	expected, err := fill(pending)
	if err != nil {
		return domain.MergedAsset{}, err
	}
	if written := pending.Written(); written != expected {
		return domain.MergedAsset{}, &errors.MergeIntegrityError{SessionID: sessionID, Expected: expected, Actual: written}
	}

	path, err := pending.Commit(expected)
	if err != nil {
		var integrityErr *errors.MergeIntegrityError
		if stderrors.As(err, &integrityErr) {
			integrityErr.SessionID = sessionID
		}
		return domain.MergedAsset{}, err
	}

	asset := domain.MergedAsset{
		Title:       meta.Title,
		Description: meta.Description,
		FileName:    filepath.Base(path),
		Format:      validation.Extension(meta.OriginalFileName),
		SizeBytes:   expected,
		ContentType: p.detector.Detect(path),
		Language:    detectLanguage(meta.Title, meta.Description),
		UploadDate:  p.now().UTC(),
		Path:        path,
		SessionID:   sessionID,
	}
	id, err := p.catalog.Create(ctx, asset)
	if err != nil {
		// a file without its catalog record must not stay published
		if rollbackErr := pending.Rollback(); rollbackErr != nil {
			p.log.Error("Cannot withdraw unregistered asset", "session_id", sessionID, "path", path, "error", rollbackErr)
		}
		return domain.MergedAsset{}, err
	}
	asset.ID = id
	return asset, nil
}

// detectLanguage ISO 639-1 code of the metadata text, empty when unsure.
func detectLanguage(texts ...string) string {
	text := strings.TrimSpace(strings.Join(texts, " "))
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
