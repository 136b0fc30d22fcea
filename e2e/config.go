package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// VAULTCAST_ADDR base URL of a running server, the suite is skipped when empty
	HTTPAddr string `envconfig:"VAULTCAST_ADDR"`
	GRPCAddr string `envconfig:"VAULTCAST_GRPC_ADDR" default:"localhost:9090"`
	Username string `envconfig:"VAULTCAST_USERNAME"`
	Password string `envconfig:"VAULTCAST_PASSWORD"`
	// E2E_DEBUG_JSON dumps gRPC responses as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized step headers
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
