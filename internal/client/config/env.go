package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "QUOTEVAULT"

// parseEnv overlays cfg with QUOTEVAULT_* variables. Unset variables leave
// the field unchanged.
func parseEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}
	return nil
}
