package e2e

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	"vaultcast/client"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type testUploadSuite struct {
	BaseSuite
}

func TestUploadSuite(t *testing.T) {
	suite.Run(t, &testUploadSuite{})
}

func (s *testUploadSuite) TestFullUploadFlow() {
	// unique name so reruns against the same server do not collide
	fileName := "e2e-" + uuid.NewString()[:8] + ".mp4"
	content := bytes.Repeat([]byte("vaultcast e2e payload "), 50_000)
	source := filepath.Join(s.T().TempDir(), fileName)
	s.Require().NoError(os.WriteFile(source, content, 0o644))

	s.Run("Step 0: Server reports SERVING", func() {
		s.WithHealth("Health check", func(ctx context.Context, client grpc_health_v1.HealthClient) {
			resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "vaultcast.Media"})
			s.Require().NoError(err)
			s.Require().Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
		})
	})

	var sessionID string
	s.Run("Step 1: Upload in parallel chunks", func() {
		s.WithClient("Chunked upload", client.Options{ChunkSize: 128 * 1024, Parallelism: 4}, func(ctx context.Context, c *client.Client) {
			result, err := c.UploadFile(ctx, source, client.Metadata{Title: "E2E", Description: "end to end run"})
			s.Require().NoError(err)
			s.Require().True(result.Completed, "no chunk answer reported the merge as scheduled")
			sessionID = result.SessionID
		})
	})

	s.Run("Step 2: Wait for the merge", func() {
		s.Require().NotEmpty(sessionID)
		s.WithClient("Poll session", client.Options{}, func(ctx context.Context, c *client.Client) {
			status, err := c.WaitMerged(ctx, sessionID, 250*time.Millisecond)
			s.Require().NoError(err)
			s.Require().NotZero(status.AssetID)
			s.Require().Empty(status.MissingChunks)
		})
	})

	s.Run("Step 3: Download with ranged requests", func() {
		s.WithClient("Download", client.Options{}, func(ctx context.Context, c *client.Client) {
			dest := filepath.Join(s.T().TempDir(), "downloaded.mp4")
			s.Require().NoError(c.Download(ctx, fileName, dest))
			downloaded, err := os.ReadFile(dest)
			s.Require().NoError(err)
			s.Require().Equal(content, downloaded)
		})
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("VAULTCAST_ADDR", "http://localhost:8080")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "localhost:9090", cfg.GRPCAddr)
	require.True(t, cfg.Colours)
	require.False(t, cfg.DebugJSON)
}
