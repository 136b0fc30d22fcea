package server

import (
	"context"
	stderrors "errors"
	"net/http"
)

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	fileName := r.PathValue("fileName")
	resp, err := s.deps.Streaming.Stream(fileName, r.Header.Get("Range"))
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.Status)
	if r.Method == http.MethodHead {
		_ = resp.Close()
		return
	}

	written, err := resp.WriteBody(r.Context(), w)
	switch {
	case err == nil:
	case stderrors.Is(err, context.Canceled):
		s.log.Debug("Client left during stream", "request_id", requestID, "file_name", fileName, "written", written)
	default:
		s.log.Warn("Stream interrupted", "request_id", requestID, "file_name", fileName, "written", written, "error", err)
	}
}
