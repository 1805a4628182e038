package config

import (
	"fmt"
	"os"
	"time"
)

// Remote backend drivers.
const (
	DriverHTTP     = "http"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the QuoteVault sync client.
//
// Units: RemoteTimeout and SyncInterval are time.Duration values.
type Config struct {
	DatabaseDSN       string        `envconfig:"DATABASE_DSN"`
	RemoteDriver      string        `envconfig:"REMOTE_DRIVER"`
	RemoteURL         string        `envconfig:"REMOTE_URL"`
	RemoteAPIKey      string        `envconfig:"REMOTE_API_KEY"`
	RemotePostgresDSN string        `envconfig:"REMOTE_POSTGRES_DSN"`
	RemoteProvision   bool          `envconfig:"REMOTE_PROVISION"`
	AccessToken       string        `envconfig:"ACCESS_TOKEN"`
	RemoteTimeout     time.Duration `envconfig:"REMOTE_TIMEOUT"`
	SyncInterval      time.Duration `envconfig:"SYNC_INTERVAL"`
	WidgetPath        string        `envconfig:"WIDGET_PATH"`
	PageSize          int           `envconfig:"PAGE_SIZE"`
	LogLevel          string        `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "quotevault.db"
	c.RemoteDriver = DriverHTTP
	c.RemoteTimeout = 10 * time.Second
	c.SyncInterval = 15 * time.Minute
	c.WidgetPath = "quote_widget.json"
	c.PageSize = 20
	c.LogLevel = "info"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	switch c.RemoteDriver {
	case DriverHTTP:
		if c.RemoteURL == "" {
			return fmt.Errorf("remote url is required for the %s driver", DriverHTTP)
		}
	case DriverPostgres:
		if c.RemotePostgresDSN == "" {
			return fmt.Errorf("remote postgres dsn is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported remote driver: %q", c.RemoteDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.RemoteTimeout <= 0 || c.SyncInterval <= 0 {
		return fmt.Errorf("remote timeout and sync interval must be positive")
	}
	return nil
}

// LoadConfig builds a Config from os.Args and the environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then overlays the JSON file (if any), the
// QUOTEVAULT_* environment and finally the flags in args. Later sources take
// precedence over earlier ones. The result is validated.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
