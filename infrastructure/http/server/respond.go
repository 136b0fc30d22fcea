package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"vaultcast/errors"
)

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type messageBody struct {
	Message        string `json:"message"`
	UploadedChunks *int   `json:"uploadedChunks,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// StatusOf maps a client-facing reason to its HTTP status.
func StatusOf(reason errors.Reason) int {
	switch reason {
	case errors.ReasonEmptyChunk,
		errors.ReasonDangerousTitle,
		errors.ReasonDangerousDescription,
		errors.ReasonInvalidField,
		errors.ReasonInvalidChunk:
		return http.StatusBadRequest
	case errors.ReasonPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ReasonUnsupportedExtension:
		return http.StatusUnsupportedMediaType
	case errors.ReasonNotFound:
		return http.StatusNotFound
	case errors.ReasonRangeNotSatisfiable:
		return http.StatusRequestedRangeNotSatisfiable
	case errors.ReasonUnauthorized:
		return http.StatusUnauthorized
	case errors.ReasonMergeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the only place an error becomes a response. Server-side
// failures are logged with their cause and answered with a generic text.
func writeError(w http.ResponseWriter, log *slog.Logger, requestID string, err error) {
	reason := errors.ReasonOf(err)
	status := StatusOf(reason)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "request_id", requestID, "reason", reason, "error", err)
		message = serverMessage(reason)
	}
	writeJSON(w, status, errorBody{Error: message, Reason: string(reason)})
}

func serverMessage(reason errors.Reason) string {
	switch reason {
	case errors.ReasonStorageFailure:
		return "could not store data, please try again"
	case errors.ReasonMergeUnavailable:
		return "merge is unavailable, please retry later"
	default:
		return "internal error"
	}
}
