package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"vaultcast/domain"
	"vaultcast/errors"
	"vaultcast/infrastructure/storage"
	"vaultcast/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mergeFixture struct {
	chunks  *storage.ChunkStore
	assets  *storage.AssetStore
	tracker *SessionTracker
	catalog *mocks.MockCatalog
	merger  *MergeService
}

func newMergeFixture(t *testing.T) mergeFixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	chunks, err := storage.NewChunkStore(filepath.Join(t.TempDir(), "chunks"), log)
	require.NoError(t, err)
	assets, err := storage.NewAssetStore(filepath.Join(t.TempDir(), "assets"), log)
	require.NoError(t, err)
	tracker := NewSessionTracker(nil, log)
	catalog := mocks.NewMockCatalog(ctrl)
	publisher := NewAssetPublisher(assets, catalog, storage.NewMimeDetector(log), log)
	return mergeFixture{
		chunks:  chunks,
		assets:  assets,
		tracker: tracker,
		catalog: catalog,
		merger:  NewMergeService(chunks, tracker, publisher, log),
	}
}

// upload stores then registers chunks in the given order and returns the completing registration.
func (f mergeFixture) upload(t *testing.T, sessionID string, meta domain.SessionMeta, parts map[int]string, order []int) domain.Registration {
	t.Helper()
	var last domain.Registration
	for _, index := range order {
		_, err := f.chunks.Put(context.Background(), sessionID, index, strings.NewReader(parts[index]))
		require.NoError(t, err)
		reg, err := f.tracker.RegisterChunk(sessionID, index, len(parts), meta)
		require.NoError(t, err)
		last = reg
	}
	return last
}

func TestMergeService_MergesOutOfOrderChunks(t *testing.T) {
	req := require.New(t)
	f := newMergeFixture(t)
	meta := domain.SessionMeta{OriginalFileName: "greeting.mp4", Title: "Greeting"}

	reg := f.upload(t, "s1", meta, map[int]string{0: "Hello ", 1: "World!"}, []int{1, 0})
	req.Equal(domain.SessionComplete, reg.Outcome)

	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, asset domain.MergedAsset) (uint64, error) {
			req.Equal("greeting.mp4", asset.FileName)
			req.Equal("mp4", asset.Format)
			req.Equal(int64(12), asset.SizeBytes)
			req.Equal("video/mp4", asset.ContentType)
			req.Equal("Greeting", asset.Title)
			req.Equal("s1", asset.SessionID)
			return 1, nil
		})

	asset, err := f.merger.Merge(context.Background(), domain.MergeJob{Session: reg.Session})
	req.NoError(err)
	req.Equal(uint64(1), asset.ID)

	content, err := os.ReadFile(filepath.Join(f.assets.Root(), "greeting.mp4"))
	req.NoError(err)
	req.Equal("Hello World!", string(content))

	indices, err := f.chunks.ListIndices("s1")
	req.NoError(err)
	req.Empty(indices, "chunks are purged after a successful merge")
	req.Equal(0, f.tracker.ActiveCount())
}

func TestMergeService_MissingChunkFailsSession(t *testing.T) {
	req := require.New(t)
	f := newMergeFixture(t)
	meta := domain.SessionMeta{OriginalFileName: "broken.mp4"}

	reg := f.upload(t, "s1", meta, map[int]string{0: "a", 1: "b", 2: "c"}, []int{0, 1, 2})
	req.Equal(domain.SessionComplete, reg.Outcome)
	req.NoError(os.Remove(filepath.Join(f.chunks.Root(), "s1", "chunk_1")))

	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.merger.Merge(context.Background(), domain.MergeJob{Session: reg.Session})
	var missingErr *errors.MissingChunkError
	req.True(stderrors.As(err, &missingErr))
	req.Equal(1, missingErr.Index)

	_, _, err = f.assets.Open("broken.mp4")
	req.ErrorIs(err, errors.ErrAssetNotFound, "no asset may be published")
	entries, err := os.ReadDir(f.assets.Root())
	req.NoError(err)
	req.Empty(entries, "temporary file is removed")

	indices, err := f.chunks.ListIndices("s1")
	req.NoError(err)
	req.Equal([]int{0, 2}, indices, "chunks are retained for inspection")
	req.Equal(0, f.tracker.ActiveCount())
}

func TestMergeService_CatalogFailureFailsSession(t *testing.T) {
	req := require.New(t)
	f := newMergeFixture(t)
	meta := domain.SessionMeta{OriginalFileName: "clip.webm"}

	reg := f.upload(t, "s1", meta, map[int]string{0: "payload"}, []int{0})
	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(uint64(0), errors.NewStorageError("store asset", io.ErrUnexpectedEOF))

	_, err := f.merger.Merge(context.Background(), domain.MergeJob{Session: reg.Session})
	req.ErrorIs(err, io.ErrUnexpectedEOF)

	indices, err := f.chunks.ListIndices("s1")
	req.NoError(err)
	req.Equal([]int{0}, indices)
	req.ErrorIs(f.tracker.MarkCompleted("s1", 1), errors.ErrSessionNotFound)

	_, _, err = f.assets.Open("clip.webm")
	req.ErrorIs(err, errors.ErrAssetNotFound, "an unregistered merge must not be streamable")
	entries, err := os.ReadDir(f.assets.Root())
	req.NoError(err)
	req.Empty(entries)
}

func TestMergeService_CatalogFailureKeepsPublishedAsset(t *testing.T) {
	req := require.New(t)
	f := newMergeFixture(t)
	meta := domain.SessionMeta{OriginalFileName: "clip.mp4"}

	first := f.upload(t, "s1", meta, map[int]string{0: "ORIGINAL"}, []int{0})
	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uint64(1), nil)
	published, err := f.merger.Merge(context.Background(), domain.MergeJob{Session: first.Session})
	req.NoError(err)
	req.Equal(int64(8), published.SizeBytes)

	second := f.upload(t, "s2", meta, map[int]string{0: "FAILED-MERGE"}, []int{0})
	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(uint64(0), errors.NewStorageError("store asset", io.ErrUnexpectedEOF))
	_, err = f.merger.Merge(context.Background(), domain.MergeJob{Session: second.Session})
	req.ErrorIs(err, io.ErrUnexpectedEOF)

	file, info, err := f.assets.Open("clip.mp4")
	req.NoError(err)
	defer file.Close()
	req.Equal(published.SizeBytes, info.Size())
	content, err := io.ReadAll(file)
	req.NoError(err)
	req.Equal("ORIGINAL", string(content))

	entries, err := os.ReadDir(f.assets.Root())
	req.NoError(err)
	req.Len(entries, 1)
}

func TestMergeService_ManyChunksKeepOrder(t *testing.T) {
	req := require.New(t)
	f := newMergeFixture(t)
	parts := make(map[int]string)
	order := make([]int, 0, 50)
	var expected strings.Builder
	for i := 0; i < 50; i++ {
		parts[i] = fmt.Sprintf("[%02d]", i)
		expected.WriteString(parts[i])
		order = append(order, 49-i)
	}

	reg := f.upload(t, "s1", domain.SessionMeta{OriginalFileName: "long.mkv"}, parts, order)
	req.Equal(domain.SessionComplete, reg.Outcome)
	f.catalog.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uint64(9), nil)

	asset, err := f.merger.Merge(context.Background(), domain.MergeJob{Session: reg.Session})
	req.NoError(err)
	req.Equal(int64(200), asset.SizeBytes)

	content, err := os.ReadFile(asset.Path)
	req.NoError(err)
	req.Equal(expected.String(), string(content))
}

func TestDetectLanguage(t *testing.T) {
	require.Equal(t, "", detectLanguage("", " "))
	require.Equal(t, "fr", detectLanguage("Les vacances d'été au bord de la mer avec toute la famille",
		"Une longue promenade sur la plage pendant le coucher du soleil"))
}
