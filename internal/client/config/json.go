package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pratish444/QuoteVault/internal/flagx"
	"github.com/pratish444/QuoteVault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so only keys present in the file
// override earlier values.
type JsonConfig struct {
	DatabaseDSN       *string         `json:"database_dsn"`
	RemoteDriver      *string         `json:"remote_driver"`
	RemoteURL         *string         `json:"remote_url"`
	RemoteAPIKey      *string         `json:"remote_api_key"`
	RemotePostgresDSN *string         `json:"remote_postgres_dsn"`
	RemoteProvision   *bool           `json:"remote_provision"`
	AccessToken       *string         `json:"access_token"`
	RemoteTimeout     *timex.Duration `json:"remote_timeout"`
	SyncInterval      *timex.Duration `json:"sync_interval"`
	WidgetPath        *string         `json:"widget_path"`
	PageSize          *int            `json:"page_size"`
	LogLevel          *string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// No file flag means no change.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RemoteDriver, jc.RemoteDriver)
	setString(&cfg.RemoteURL, jc.RemoteURL)
	setString(&cfg.RemoteAPIKey, jc.RemoteAPIKey)
	setString(&cfg.RemotePostgresDSN, jc.RemotePostgresDSN)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.WidgetPath, jc.WidgetPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RemoteTimeout != nil {
		cfg.RemoteTimeout = jc.RemoteTimeout.Duration
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.RemoteProvision != nil {
		cfg.RemoteProvision = *jc.RemoteProvision
	}
	if jc.PageSize != nil {
		cfg.PageSize = *jc.PageSize
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
