package storage

import (
	"log/slog"
	"path/filepath"
	"vaultcast/domain/mimetypes"

	"github.com/gabriel-vasile/mimetype"
)

// MimeDetector sniffs the first bytes of a file and falls back on its extension.
type MimeDetector struct {
	log *slog.Logger
}

func NewMimeDetector(log *slog.Logger) *MimeDetector {
	return &MimeDetector{log: log}
}

// Detect never fails: unknown content is application/octet-stream.
func (d *MimeDetector) Detect(path string) string {
	byExt := mimetypes.ForExtension(filepath.Ext(path))
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		d.log.Debug("Cannot sniff content type", "path", path, "error", err)
		return string(byExt)
	}
	detected := mtype.String()
	if mimetypes.IsVideo(detected) || byExt == mimetypes.OctetStream {
		return detected
	}
	return string(byExt)
}
