// Package config loads runtime configuration for the QuoteVault sync client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with QUOTEVAULT_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   local SQLite DSN or file path
//	-r string   remote driver: http or postgres
//	-u string   base URL of the PostgREST endpoint
//	-k string   anonymous API key
//	-i int      background sync interval (seconds)
//	-w string   widget payload file path
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "database_dsn": "quotevault.db",
//	  "remote_driver": "http",
//	  "remote_url": "https://project.supabase.co",
//	  "remote_api_key": "anon-key",
//	  "remote_provision": false,
//	  "remote_timeout": "10s",
//	  "sync_interval": "15m",
//	  "widget_path": "quote_widget.json",
//	  "page_size": 20,
//	  "log_level": "info"
//	}
//
// Environment variables use the field names, e.g. QUOTEVAULT_REMOTE_URL,
// QUOTEVAULT_SYNC_INTERVAL=5m, QUOTEVAULT_ACCESS_TOKEN. RemoteProvision applies
// the remote schema migrations at startup and only affects the postgres
// driver.
package config
