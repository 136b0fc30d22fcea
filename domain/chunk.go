package domain

import "io"

// ChunkUploadRequest one multipart chunk of a session.
type ChunkUploadRequest struct {
	SessionID        string `validate:"required,max=128,pathsegment"`
	ChunkIndex       int    `validate:"gte=0,ltfield=TotalChunks"`
	TotalChunks      int    `validate:"gt=0"`
	OriginalFileName string `validate:"required,max=255"`
	Title            string `validate:"max=255"`
	Description      string `validate:"max=4096"`
	Size             int64
	Body             io.Reader `validate:"-"`
}

func (r ChunkUploadRequest) Meta() SessionMeta {
	return SessionMeta{
		OriginalFileName: r.OriginalFileName,
		Title:            r.Title,
		Description:      r.Description,
	}
}

// FileUploadRequest a whole file sent in a single request.
type FileUploadRequest struct {
	OriginalFileName string `validate:"required,max=255"`
	Title            string `validate:"max=255"`
	Description      string `validate:"max=4096"`
	Size             int64
	Body             io.Reader `validate:"-"`
}

func (r FileUploadRequest) Meta() SessionMeta {
	return SessionMeta{
		OriginalFileName: r.OriginalFileName,
		Title:            r.Title,
		Description:      r.Description,
	}
}

// ChunkReceipt what the receiver tells the client after a chunk.
type ChunkReceipt struct {
	SessionID      string
	Outcome        RegistrationOutcome
	UploadedChunks int
	TotalChunks    int
}

// MergeJob is handed over exactly once per completed session.
type MergeJob struct {
	Session UploadSession
}
