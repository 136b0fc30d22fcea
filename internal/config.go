package internal

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/docker/go-units"
	"github.com/joho/godotenv"
)

type Config struct {
	Host      string `env:"HOST,default=0.0.0.0"`
	Port      int    `env:"PORT,default=8080"`
	GRPCPort  int    `env:"GRPC_PORT,default=9090"`
	DebugPort int    `env:"DEBUG_PORT"`
	LogLevel  string `env:"LOG_LEVEL,default=INFO"`

	ChunkDir       string `env:"CHUNK_DIR,required=true"`
	AssetDir       string `env:"ASSET_DIR,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	MaxUploadSize    string `env:"MAX_UPLOAD_SIZE,default=4GiB"`
	MultipartMemory  string `env:"MULTIPART_MEMORY,default=32MiB"`
	MinFreeDisk      string `env:"MIN_FREE_DISK,default=1GiB"`
	DangerousMarkers string `env:"DANGEROUS_MARKERS"`

	MergeWorkers       int           `env:"MERGE_WORKERS,default=4"`
	MergeQueueSize     int           `env:"MERGE_QUEUE_SIZE,default=64"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT,default=24h"`
	JanitorInterval    time.Duration `env:"JANITOR_INTERVAL,default=10m"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=30s"`
	HealthInterval     time.Duration `env:"HEALTH_INTERVAL,default=5s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`

	AuthEnabled       bool          `env:"AUTH_ENABLED,default=false"`
	AuthUsername      string        `env:"AUTH_USERNAME"`
	AuthPasswordHash  string        `env:"AUTH_PASSWORD_HASH"`
	AuthSecret        string        `env:"AUTH_SECRET"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=1h"`
}

// LoadConfig reads a .env file when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("cannot read .env: %w", err)
	}
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) MaxUploadBytes() (int64, error) {
	return parseSize("MAX_UPLOAD_SIZE", c.MaxUploadSize)
}

func (c Config) MultipartMemoryBytes() (int64, error) {
	return parseSize("MULTIPART_MEMORY", c.MultipartMemory)
}

func (c Config) MinFreeDiskBytes() (uint64, error) {
	n, err := parseSize("MIN_FREE_DISK", c.MinFreeDisk)
	return uint64(n), err
}

// Markers comma separated DANGEROUS_MARKERS, nil when unset.
func (c Config) Markers() []string {
	if strings.TrimSpace(c.DangerousMarkers) == "" {
		return nil
	}
	return strings.Split(c.DangerousMarkers, ",")
}

func (c Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

func (c Config) Validate() error {
	var errs []error
	for _, size := range []func() (int64, error){c.MaxUploadBytes, c.MultipartMemoryBytes} {
		if _, err := size(); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := c.MinFreeDiskBytes(); err != nil {
		errs = append(errs, err)
	}
	if c.MergeWorkers < 1 {
		errs = append(errs, fmt.Errorf("MERGE_WORKERS must be at least 1, got %d", c.MergeWorkers))
	}
	if c.MergeQueueSize < 1 {
		errs = append(errs, fmt.Errorf("MERGE_QUEUE_SIZE must be at least 1, got %d", c.MergeQueueSize))
	}
	if c.ChunkDir == c.AssetDir {
		errs = append(errs, fmt.Errorf("CHUNK_DIR and ASSET_DIR must differ"))
	}
	if c.AuthEnabled {
		if c.AuthUsername == "" || c.AuthPasswordHash == "" {
			errs = append(errs, fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD_HASH are required when AUTH_ENABLED"))
		}
		if len(c.AuthSecret) < 32 {
			errs = append(errs, fmt.Errorf("AUTH_SECRET must hold at least 32 characters when AUTH_ENABLED"))
		}
	}
	return stderrors.Join(errs...)
}

func parseSize(name, raw string) (int64, error) {
	n, err := units.RAMInBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", name, raw)
	}
	return n, nil
}
