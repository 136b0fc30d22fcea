package domain

import "time"

// MergedAsset catalog entry of a published file.
type MergedAsset struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	FileName    string    `json:"file_name"`
	Format      string    `json:"format"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	Language    string    `json:"language,omitempty"`
	UploadDate  time.Time `json:"upload_date"`
	Path        string    `json:"path"`
	SessionID   string    `json:"session_id,omitempty"`
}
