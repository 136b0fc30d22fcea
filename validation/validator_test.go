package validation

import (
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"vaultcast/domain"
	"vaultcast/errors"
	"vaultcast/moderation"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	mod, err := moderation.NewModerator(moderation.DefaultDenylist, logs.GetLoggerFromLevel(slog.LevelDebug))
	require.NoError(t, err)
	return NewValidator(DefaultMaxUploadSize, mod)
}

func TestValidator_IsSizeValid(t *testing.T) {
	v := newTestValidator(t)
	require.False(t, v.IsSizeValid(0))
	require.False(t, v.IsSizeValid(-1))
	require.True(t, v.IsSizeValid(1))
	require.True(t, v.IsSizeValid(DefaultMaxUploadSize))
	require.False(t, v.IsSizeValid(DefaultMaxUploadSize+1))
}

func TestIsAllowedExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"video.mp4", true},
		{"VIDEO.MKV", true},
		{"clip.final.webm", true},
		{"movie.mov", true},
		{"a.avi", true},
		{"a.wmv", true},
		{"a.flv", true},
		{"video.exe", false},
		{"video.mp4.exe", false},
		{"noextension", false},
		{"trailingdot.", false},
		{"", false},
		{"../../etc/passwd.mp4", true},
		{`C:\Users\me\clip.mp4`, true},
	}
	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			require.Equal(t, tt.want, IsAllowedExtension(tt.fileName))
		})
	}
}

func TestCleanFileName(t *testing.T) {
	require.Equal(t, "passwd.mp4", CleanFileName("../../etc/passwd.mp4"))
	require.Equal(t, "clip.mp4", CleanFileName(`C:\Users\me\clip.mp4`))
	require.Equal(t, "", CleanFileName(".."))
	require.Equal(t, "", CleanFileName(""))
}

func TestIsPathSegment(t *testing.T) {
	require.True(t, IsPathSegment("9f0c-session"))
	require.False(t, IsPathSegment(""))
	require.False(t, IsPathSegment(".."))
	require.False(t, IsPathSegment("a/b"))
	require.False(t, IsPathSegment(`a\b`))
}

func chunkRequest() domain.ChunkUploadRequest {
	return domain.ChunkUploadRequest{
		SessionID:        "session-1",
		ChunkIndex:       0,
		TotalChunks:      2,
		OriginalFileName: "holiday.mp4",
		Title:            "Holiday",
		Description:      "Summer trip",
		Size:             1024,
		Body:             strings.NewReader("x"),
	}
}

func TestValidator_ValidateChunk(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name   string
		mutate func(r *domain.ChunkUploadRequest)
		reason errors.Reason
	}{
		{"Valid chunk", func(r *domain.ChunkUploadRequest) {}, ""},
		{"Empty chunk", func(r *domain.ChunkUploadRequest) { r.Size = 0 }, errors.ReasonEmptyChunk},
		{"Too large", func(r *domain.ChunkUploadRequest) { r.Size = DefaultMaxUploadSize + 1 }, errors.ReasonPayloadTooLarge},
		{"Bad extension", func(r *domain.ChunkUploadRequest) { r.OriginalFileName = "video.exe" }, errors.ReasonUnsupportedExtension},
		{"Script in title", func(r *domain.ChunkUploadRequest) { r.Title = "<script>alert(1)</script>" }, errors.ReasonDangerousTitle},
		{"Script in description", func(r *domain.ChunkUploadRequest) { r.Description = "hi <SCRIPT>" }, errors.ReasonDangerousDescription},
		{"Index out of range", func(r *domain.ChunkUploadRequest) { r.ChunkIndex = 2 }, errors.ReasonInvalidField},
		{"Negative index", func(r *domain.ChunkUploadRequest) { r.ChunkIndex = -1 }, errors.ReasonInvalidField},
		{"Zero total", func(r *domain.ChunkUploadRequest) { r.TotalChunks = 0 }, errors.ReasonInvalidField},
		{"Traversal session", func(r *domain.ChunkUploadRequest) { r.SessionID = "../x" }, errors.ReasonInvalidField},
		{"Missing file name", func(r *domain.ChunkUploadRequest) { r.OriginalFileName = "" }, errors.ReasonInvalidField},
		{"Empty wins over extension", func(r *domain.ChunkUploadRequest) {
			r.Size = 0
			r.OriginalFileName = "video.exe"
		}, errors.ReasonEmptyChunk},
		{"Extension wins over title", func(r *domain.ChunkUploadRequest) {
			r.OriginalFileName = "video.exe"
			r.Title = "<script"
		}, errors.ReasonUnsupportedExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := chunkRequest()
			tt.mutate(&req)
			err := v.ValidateChunk(req)
			if tt.reason == "" {
				require.NoError(t, err)
				return
			}
			var validationErr *errors.ValidationError
			require.True(t, stderrors.As(err, &validationErr))
			require.Equal(t, tt.reason, validationErr.Reason)
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	v := newTestValidator(t)
	req := domain.FileUploadRequest{OriginalFileName: "a.mkv", Size: 10}
	require.NoError(t, v.ValidateFile(req))

	req.Size = 0
	require.ErrorIs(t, v.ValidateFile(req), errors.ErrEmptyChunk)
}

func TestValidator_ValidateStruct(t *testing.T) {
	req := require.New(t)
	v := newTestValidator(t)
	type page struct {
		Limit int `validate:"gte=1,lte=100"`
	}

	req.NoError(v.ValidateStruct(page{Limit: 20}))

	err := v.ValidateStruct(page{Limit: 0})
	req.ErrorIs(err, errors.ErrInvalidField)
	var validationErr *errors.ValidationError
	req.True(stderrors.As(err, &validationErr))
	req.Equal("Limit", validationErr.Field)
	req.Equal(errors.ReasonInvalidField, validationErr.Reason)
}
