package internal

import (
	"testing"
	"time"

	"github.com/docker/go-units"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("CHUNK_DIR", "/tmp/vaultcast/chunks")
	t.Setenv("ASSET_DIR", "/tmp/vaultcast/assets")
	t.Setenv("BADGER_FILEPATH", "/tmp/vaultcast/badger")
	t.Setenv("BLUGE_FILEPATH", "/tmp/vaultcast/bluge")
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(8080, cfg.Port)
	req.Equal(4, cfg.MergeWorkers)
	req.Equal(24*time.Hour, cfg.SessionIdleTimeout)
	req.False(cfg.AuthEnabled)
	req.Nil(cfg.Markers())
	req.Equal("0.0.0.0:9090", cfg.GRPCAddress())

	maxSize, err := cfg.MaxUploadBytes()
	req.NoError(err)
	req.Equal(int64(4*units.GiB), maxSize)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("CHUNK_DIR", "")
	t.Setenv("ASSET_DIR", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		ChunkDir:        "/c",
		AssetDir:        "/a",
		MaxUploadSize:   "4GiB",
		MultipartMemory: "32MiB",
		MinFreeDisk:     "1GiB",
		MergeWorkers:    1,
		MergeQueueSize:  1,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"Unparsable size", func(c *Config) { c.MaxUploadSize = "lots" }},
		{"No workers", func(c *Config) { c.MergeWorkers = 0 }},
		{"Same directories", func(c *Config) { c.AssetDir = c.ChunkDir }},
		{"Auth without secret", func(c *Config) {
			c.AuthEnabled = true
			c.AuthUsername = "uploader"
			c.AuthPasswordHash = "$argon2id$..."
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Markers(t *testing.T) {
	cfg := Config{DangerousMarkers: "<script,javascript:"}
	require.Equal(t, []string{"<script", "javascript:"}, cfg.Markers())
}
