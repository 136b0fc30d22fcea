// Package server exposes the upload, streaming and catalog operations over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"vaultcast/auth"
	"vaultcast/contract"
	"vaultcast/domain"
	"vaultcast/services"
	"vaultcast/validation"

	"github.com/docker/go-units"
	"github.com/google/uuid"
)

// multipartOverhead headroom for boundaries and text fields on top of the file size.
const multipartOverhead = 1 * units.MiB

// HealthProbe latest resource sample served on /healthz.
type HealthProbe interface {
	Latest() domain.ResourceSnapshot
}

type Dependencies struct {
	Uploads         *services.UploadService
	Streaming       *services.StreamingService
	Catalog         contract.Catalog
	Auth            *services.AuthService
	Validator       *validation.Validator
	Health          HealthProbe
	Issuer          *auth.TokenIssuer
	RequireAuth     bool
	MultipartMemory int64
}

type Server struct {
	deps Dependencies
	log  *slog.Logger
}

// NewRouter builds the public mux. Upload routes sit behind the bearer check
// when RequireAuth is set; streaming and catalog reads stay public.
func NewRouter(deps Dependencies, log *slog.Logger) http.Handler {
	s := &Server{deps: deps, log: log}
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.Handler { return h }
	if deps.RequireAuth && deps.Issuer != nil {
		bearer := auth.RequireBearer(deps.Issuer, log)
		protect = func(h http.HandlerFunc) http.Handler { return bearer(h) }
	}

	mux.Handle("POST /upload/chunk", protect(s.handleUploadChunk))
	mux.Handle("GET /upload/chunk/{sessionID}", protect(s.handleSessionStatus))
	mux.Handle("POST /upload", protect(s.handleUploadFile))
	mux.HandleFunc("GET /v1/stream/{fileName}", s.handleStream)
	mux.HandleFunc("GET /v1/assets/{id}", s.handleGetAsset)
	mux.HandleFunc("GET /v1/assets", s.handleListAssets)
	if deps.Auth != nil {
		mux.HandleFunc("POST /v1/auth/token", s.handleToken)
	}
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.recoverer(s.requestLogger(mux))
}

// NewHTTPServer wraps the router with the timeouts used for long uploads and streams.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

type requestIDKey struct{}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		rec := &statusRecorder{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID)))

		s.log.Debug("Request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.log.Error("Handler panic", "path", r.URL.Path, "panic", fmt.Sprint(rec))
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Reason: "INTERNAL"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
