// Package client uploads media to a VaultCast server in parallel chunks and
// downloads published assets with ranged requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mcuadros/go-defaults"
	"github.com/melbahja/got"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	BaseURL      string
	Token        string
	ChunkSize    int64         `default:"8388608"`
	Parallelism  int           `default:"4"`
	RetryMax     int           `default:"4"`
	RetryWaitMin time.Duration `default:"200ms"`
	RetryWaitMax time.Duration `default:"5s"`
}

type Metadata struct {
	Title       string
	Description string
}

// APIError is a non-2xx answer decoded from the server's error body.
type APIError struct {
	Status  int
	Reason  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server answered %d (%s): %s", e.Status, e.Reason, e.Message)
}

type UploadResult struct {
	SessionID string
	FileName  string
	Chunks    int
	Size      int64
	// Completed is true once one chunk answer reported the merge as scheduled.
	Completed bool
}

type SessionStatus struct {
	SessionID      string `json:"sessionId"`
	State          string `json:"state"`
	TotalChunks    int    `json:"totalChunks"`
	ReceivedChunks int    `json:"receivedChunks"`
	StoredChunks   []int  `json:"storedChunks"`
	MissingChunks  []int  `json:"missingChunks"`
	FailureReason  string `json:"failureReason"`
	AssetID        uint64 `json:"assetId"`
}

type Client struct {
	http    *retryablehttp.Client
	baseURL string
	opts    Options
	log     *slog.Logger
}

func New(opts Options, log *slog.Logger) (*Client, error) {
	defaults.SetDefaults(&opts)
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}
	if opts.ChunkSize <= 0 || opts.Parallelism <= 0 {
		return nil, fmt.Errorf("chunk size and parallelism must be positive")
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = opts.RetryWaitMin
	rc.RetryWaitMax = opts.RetryWaitMax
	rc.Logger = log
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		retry, checkErr := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		if retry {
			log.Debug("Retrying request", "status", statusOf(resp), "error", err)
		}
		return retry, checkErr
	}
	// keep the last response so its error body can be decoded
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{http: rc, baseURL: base.String(), opts: opts, log: log}, nil
}

// Login exchanges credentials for a bearer token used by later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := retryablehttp.NewRequest(http.MethodPost, c.baseURL+"/v1/auth/token", []byte(form.Encode()))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var token struct {
		AccessToken string `json:"access_token"`
	}
	if _, err := c.doJSON(req, &token); err != nil {
		return err
	}
	c.opts.Token = token.AccessToken
	return nil
}

// UploadFile splits path into chunks and sends up to Parallelism of them at once.
// Every chunk is retried on its own, resending a chunk is harmless server side.
func (c *Client) UploadFile(ctx context.Context, path string, meta Metadata) (UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return UploadResult{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return UploadResult{}, err
	}
	if info.Size() == 0 {
		return UploadResult{}, fmt.Errorf("%s is empty", path)
	}

	result := UploadResult{
		SessionID: uuid.NewString(),
		FileName:  filepath.Base(path),
		Chunks:    int((info.Size() + c.opts.ChunkSize - 1) / c.opts.ChunkSize),
		Size:      info.Size(),
	}
	var completed atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Parallelism)
	for i := 0; i < result.Chunks; i++ {
		index := i
		g.Go(func() error {
			offset := int64(index) * c.opts.ChunkSize
			length := min(c.opts.ChunkSize, info.Size()-offset)
			status, err := c.sendChunk(gctx, result, index, io.NewSectionReader(f, offset, length), meta)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", index, err)
			}
			if status == http.StatusAccepted {
				completed.Store(true)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Completed = completed.Load()
	c.log.Info("Upload sent", "session_id", result.SessionID, "chunks", result.Chunks, "size", result.Size)
	return result, nil
}

func (c *Client) sendChunk(ctx context.Context, upload UploadResult, index int, chunk io.Reader, meta Metadata) (int, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"fileId":           upload.SessionID,
		"chunkIndex":       strconv.Itoa(index),
		"totalChunks":      strconv.Itoa(upload.Chunks),
		"originalFileName": upload.FileName,
		"title":            meta.Title,
		"description":      meta.Description,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return 0, err
		}
	}
	part, err := mw.CreateFormFile("file", fmt.Sprintf("chunk_%d", index))
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, chunk); err != nil {
		return 0, err
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, c.baseURL+"/upload/chunk", body.Bytes())
	if err != nil {
		return 0, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.doJSON(req, nil)
}

func (c *Client) Status(ctx context.Context, sessionID string) (SessionStatus, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, c.baseURL+"/upload/chunk/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return SessionStatus{}, err
	}
	req = req.WithContext(ctx)
	var status SessionStatus
	_, err = c.doJSON(req, &status)
	return status, err
}

// WaitMerged polls the session until the merge completed or failed.
func (c *Client) WaitMerged(ctx context.Context, sessionID string, interval time.Duration) (SessionStatus, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		status, err := c.Status(ctx, sessionID)
		if err != nil {
			return status, err
		}
		switch status.State {
		case "COMPLETED":
			return status, nil
		case "FAILED":
			return status, fmt.Errorf("merge of %s failed: %s", sessionID, status.FailureReason)
		}
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Download fetches a published asset into dest using parallel ranged requests.
func (c *Client) Download(ctx context.Context, fileName, dest string) error {
	downloader := got.New()
	downloader.Client = c.http.StandardClient()
	return downloader.Do(got.NewDownload(ctx, c.baseURL+"/v1/stream/"+url.PathEscape(fileName), dest))
}

func (c *Client) doJSON(req *retryablehttp.Request, out any) (int, error) {
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error  string `json:"error"`
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Message, apiErr.Reason = body.Error, body.Reason
		}
		return resp.StatusCode, apiErr
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("cannot decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
