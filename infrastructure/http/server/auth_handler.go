package server

import (
	"net/http"
	"time"
)

type tokenBody struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	requestID := RequestIDFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	token, err := s.deps.Auth.Login(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		writeError(w, s.log, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenBody{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}
