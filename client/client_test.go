package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// fakeServer stores chunks in memory and fails the first attempt of every chunk.
type fakeServer struct {
	mu       sync.Mutex
	chunks   map[int][]byte
	attempts map[int]int
	total    int
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	index, _ := strconv.Atoi(r.FormValue("chunkIndex"))
	total, _ := strconv.Atoi(r.FormValue("totalChunks"))
	file, _, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	data, _ := io.ReadAll(file)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[index]++
	if s.attempts[index] == 1 {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.total = total
	s.chunks[index] = data
	w.Header().Set("Content-Type", "application/json")
	if len(s.chunks) == total {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"message":"All chunks received. File merging in progress."}`))
		return
	}
	_, _ = w.Write([]byte(`{"message":"ok","uploadedChunks":1}`))
}

func newTestClient(t *testing.T, url string, opts Options) *Client {
	t.Helper()
	opts.BaseURL = url
	opts.RetryWaitMin = time.Millisecond
	opts.RetryWaitMax = 5 * time.Millisecond
	c, err := New(opts, logs.GetLoggerFromLevel(slog.LevelDebug))
	require.NoError(t, err)
	return c
}

func TestUploadFile_RetriesAndReassembles(t *testing.T) {
	req := require.New(t)
	fake := &fakeServer{chunks: map[int][]byte{}, attempts: map[int]int{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	content := bytes.Repeat([]byte("0123456789"), 25)
	path := filepath.Join(t.TempDir(), "movie.mp4")
	req.NoError(os.WriteFile(path, content, 0o644))

	c := newTestClient(t, srv.URL, Options{ChunkSize: 64, Parallelism: 3})
	result, err := c.UploadFile(context.Background(), path, Metadata{Title: "Movie"})
	req.NoError(err)
	req.Equal(4, result.Chunks)
	req.True(result.Completed)
	req.Equal("movie.mp4", result.FileName)

	var merged []byte
	for i := 0; i < fake.total; i++ {
		merged = append(merged, fake.chunks[i]...)
		req.Equal(2, fake.attempts[i])
	}
	req.Equal(content, merged)
}

func TestUploadFile_ClientErrorIsNotRetried(t *testing.T) {
	req := require.New(t)
	var calls sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := calls.LoadOrStore("n", new(int))
		*(n.(*int))++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnsupportedMediaType)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file extension is not allowed", "reason": "UNSUPPORTED_EXTENSION"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "virus.exe")
	req.NoError(os.WriteFile(path, []byte("MZ"), 0o644))

	c := newTestClient(t, srv.URL, Options{})
	_, err := c.UploadFile(context.Background(), path, Metadata{})
	var apiErr *APIError
	req.ErrorAs(err, &apiErr)
	req.Equal(http.StatusUnsupportedMediaType, apiErr.Status)
	req.Equal("UNSUPPORTED_EXTENSION", apiErr.Reason)
	n, _ := calls.Load("n")
	req.Equal(1, *(n.(*int)))
}

func TestWaitMerged(t *testing.T) {
	req := require.New(t)
	var mu sync.Mutex
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		polls++
		state := "MERGING"
		if polls >= 3 {
			state = "COMPLETED"
		}
		mu.Unlock()
		if r.URL.Path != "/upload/chunk/s1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(SessionStatus{SessionID: "s1", State: state, AssetID: 9})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Options{})
	status, err := c.WaitMerged(context.Background(), "s1", time.Millisecond)
	req.NoError(err)
	req.Equal(uint64(9), status.AssetID)
}

func TestDownload(t *testing.T) {
	req := require.New(t)
	content := bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz"), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/stream/letters.mp4" {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, "letters.mp4", time.Now(), bytes.NewReader(content))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, Options{})
	dest := filepath.Join(t.TempDir(), "letters.mp4")
	req.NoError(c.Download(context.Background(), "letters.mp4", dest))

	got, err := os.ReadFile(dest)
	req.NoError(err)
	req.Equal(content, got)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url"}, logs.GetLoggerFromLevel(slog.LevelDebug))
	require.Error(t, err)
}
