package server

import (
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
	"vaultcast/domain"
	"vaultcast/errors"

	"github.com/docker/go-units"
)

const defaultMultipartMemory = 32 * units.MiB

type sessionStatusBody struct {
	SessionID      string    `json:"sessionId"`
	State          string    `json:"state"`
	TotalChunks    int       `json:"totalChunks"`
	ReceivedChunks int       `json:"receivedChunks"`
	StoredChunks   []int     `json:"storedChunks"`
	MissingChunks  []int     `json:"missingChunks,omitempty"`
	FailureReason  string    `json:"failureReason,omitempty"`
	AssetID        uint64    `json:"assetId,omitempty"`
	LastActivity   time.Time `json:"lastActivity"`
}

type fileUploadBody struct {
	Message    string `json:"message"`
	FileName   string `json:"fileName"`
	MetadataID uint64 `json:"metadataId"`
}

func (s *Server) handleUploadChunk(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	cleanup, err := s.parseMultipart(w, r)
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	defer cleanup()

	index, err := formInt(r, "chunkIndex")
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	total, err := formInt(r, "totalChunks")
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	file, header, err := formFile(r)
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	defer file.Close()

	receipt, err := s.deps.Uploads.ReceiveChunk(r.Context(), domain.ChunkUploadRequest{
		SessionID:        r.FormValue("fileId"),
		ChunkIndex:       index,
		TotalChunks:      total,
		OriginalFileName: r.FormValue("originalFileName"),
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Size:             header.Size,
		Body:             file,
	})
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}

	uploaded := receipt.UploadedChunks
	switch receipt.Outcome {
	case domain.SessionComplete:
		writeJSON(w, http.StatusAccepted, messageBody{Message: "All chunks received. File merging in progress."})
	case domain.SessionAlreadyMerging:
		writeJSON(w, http.StatusAccepted, messageBody{Message: "Upload already complete. File merging in progress.", UploadedChunks: &uploaded})
	default:
		writeJSON(w, http.StatusOK, messageBody{
			Message:        fmt.Sprintf("Chunk %d uploaded successfully", index),
			UploadedChunks: &uploaded,
		})
	}
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	session, stored, err := s.deps.Uploads.SessionStatus(r.PathValue("sessionID"))
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	if stored == nil {
		stored = []int{}
	}
	body := sessionStatusBody{
		SessionID:      session.SessionID,
		State:          session.State.String(),
		TotalChunks:    session.TotalChunks,
		ReceivedChunks: session.ReceivedCount(),
		StoredChunks:   stored,
		FailureReason:  session.FailureReason,
		AssetID:        session.AssetID,
		LastActivity:   session.LastActivity,
	}
	if session.State == domain.Receiving {
		body.MissingChunks = session.Missing()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	cleanup, err := s.parseMultipart(w, r)
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	defer cleanup()

	file, header, err := formFile(r)
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	defer file.Close()

	fileName := r.FormValue("originalFileName")
	if fileName == "" {
		fileName = header.Filename
	}
	asset, err := s.deps.Uploads.UploadFile(r.Context(), domain.FileUploadRequest{
		OriginalFileName: fileName,
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Size:             header.Size,
		Body:             file,
	})
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	writeJSON(w, http.StatusCreated, fileUploadBody{
		Message:    "File uploaded successfully",
		FileName:   asset.FileName,
		MetadataID: asset.ID,
	})
}

// parseMultipart bounds the body to the upload ceiling plus form overhead.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) (func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.deps.Validator.MaxSize()+multipartOverhead)
	memory := s.deps.MultipartMemory
	if memory <= 0 {
		memory = defaultMultipartMemory
	}
	if err := r.ParseMultipartForm(memory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, errors.NewValidationError(errors.ReasonPayloadTooLarge, "file",
				fmt.Errorf("%w: limit is %s", errors.ErrPayloadTooLarge, units.BytesSize(float64(s.deps.Validator.MaxSize()))))
		}
		return nil, errors.NewValidationError(errors.ReasonInvalidField, "",
			fmt.Errorf("%w: malformed multipart body: %v", errors.ErrInvalidField, err))
	}
	return func() { _ = r.MultipartForm.RemoveAll() }, nil
}

func formInt(r *http.Request, name string) (int, error) {
	raw := r.FormValue(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(errors.ReasonInvalidField, name,
			fmt.Errorf("%w: %s must be an integer, got %q", errors.ErrInvalidField, name, raw))
	}
	return v, nil
}

func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("file")
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, nil, errors.NewValidationError(errors.ReasonInvalidField, "file",
			fmt.Errorf("%w: file part is required", errors.ErrInvalidField))
	}
	if err != nil {
		return nil, nil, errors.NewValidationError(errors.ReasonInvalidField, "file",
			fmt.Errorf("%w: %v", errors.ErrInvalidField, err))
	}
	return file, header, nil
}
