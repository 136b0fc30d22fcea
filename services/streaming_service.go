package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"vaultcast/contract"
	"vaultcast/domain"
	"vaultcast/errors"
)

const streamBufferSize = 8 * 1024

// ResolveRange parses a single "bytes=<start>-<end>" range against total bytes.
// A blank header is the full range. Bounds are plain ASCII digits. Suffix
// ranges and multiple ranges are not satisfiable, nor is any window outside [0,total).
func ResolveRange(header string, total int64) (domain.RangeRequest, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return domain.FullRange(total), nil
	}
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return domain.RangeRequest{}, fmt.Errorf("%w: unsupported unit in %q", errors.ErrRangeNotSatisfied, header)
	}
	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return domain.RangeRequest{}, fmt.Errorf("%w: malformed %q", errors.ErrRangeNotSatisfied, header)
	}
	// ParseInt alone would take a sign
	if !isDigits(parts[0]) {
		return domain.RangeRequest{}, fmt.Errorf("%w: bad start in %q", errors.ErrRangeNotSatisfied, header)
	}
	start, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return domain.RangeRequest{}, fmt.Errorf("%w: bad start in %q", errors.ErrRangeNotSatisfied, header)
	}
	end := total - 1
	if rawEnd := parts[1]; rawEnd != "" {
		if !isDigits(rawEnd) {
			return domain.RangeRequest{}, fmt.Errorf("%w: bad end in %q", errors.ErrRangeNotSatisfied, header)
		}
		end, err = strconv.ParseInt(rawEnd, 10, 64)
		if err != nil {
			return domain.RangeRequest{}, fmt.Errorf("%w: bad end in %q", errors.ErrRangeNotSatisfied, header)
		}
	}
	if start < 0 || start > end || end >= total {
		return domain.RangeRequest{}, fmt.Errorf("%w: %d-%d outside %d bytes", errors.ErrRangeNotSatisfied, start, end, total)
	}
	return domain.RangeRequest{Start: start, End: end, TotalSize: total, Partial: true}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// StreamingService serves published assets, optionally by byte range.
// It never touches upload-side state.
type StreamingService struct {
	assets   contract.AssetStore
	detector contract.ContentTypeDetector
	log      *slog.Logger
}

func NewStreamingService(assets contract.AssetStore, detector contract.ContentTypeDetector, log *slog.Logger) *StreamingService {
	return &StreamingService{assets: assets, detector: detector, log: log}
}

// StreamResponse status and headers of a streaming answer; the body is written by WriteBody.
type StreamResponse struct {
	Status int
	Header http.Header
	Window domain.RangeRequest
	file   *os.File
}

// Stream opens fileName and resolves rangeHeader against it. A 416 answer is
// returned as a response, not an error. The caller must call WriteBody or Close.
func (s *StreamingService) Stream(fileName, rangeHeader string) (*StreamResponse, error) {
	f, info, err := s.assets.Open(fileName)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", s.detector.Detect(f.Name()))

	window, err := ResolveRange(rangeHeader, info.Size())
	if err != nil {
		_ = f.Close()
		s.log.Debug("Range not satisfiable", "file_name", fileName, "range", rangeHeader, "size", info.Size())
		header.Set("Content-Length", "0")
		return &StreamResponse{Status: http.StatusRequestedRangeNotSatisfiable, Header: header}, nil
	}

	header.Set("Accept-Ranges", "bytes")
	header.Set("Content-Length", strconv.FormatInt(window.Length(), 10))
	status := http.StatusOK
	if window.Partial {
		status = http.StatusPartialContent
		header.Set("Content-Range", window.ContentRange())
	}
	return &StreamResponse{Status: status, Header: header, Window: window, file: f}, nil
}

// WriteBody copies exactly the window through a fixed buffer and closes the file.
// A write error, typically a client gone away, stops the copy.
func (r *StreamResponse) WriteBody(ctx context.Context, w io.Writer) (int64, error) {
	if r.file == nil {
		return 0, nil
	}
	defer r.Close()

	if _, err := r.file.Seek(r.Window.Start, io.SeekStart); err != nil {
		return 0, errors.NewStorageError("seek asset", err)
	}
	buf := make([]byte, streamBufferSize)
	remaining := r.Window.Length()
	var written int64
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		toRead := int64(len(buf))
		if remaining < toRead {
			toRead = remaining
		}
		n, readErr := r.file.Read(buf[:toRead])
		if n > 0 {
			m, err := w.Write(buf[:n])
			written += int64(m)
			if err != nil {
				return written, err
			}
			remaining -= int64(n)
		}
		if readErr == io.EOF && remaining > 0 {
			return written, io.ErrUnexpectedEOF
		}
		if readErr != nil && readErr != io.EOF {
			return written, errors.NewStorageError("read asset", readErr)
		}
	}
	return written, nil
}

func (r *StreamResponse) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
