package config

import (
	"flag"
	"io"
	"time"

	"github.com/pratish444/QuoteVault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags handled here are kept from args, using flagx.FilterArgs,
// so other components can share the command line.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-r", "-u", "-k", "-i", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database DSN or file path")
	fs.StringVar(&cfg.RemoteDriver, "r", cfg.RemoteDriver, "remote driver (http or postgres)")
	fs.StringVar(&cfg.RemoteURL, "u", cfg.RemoteURL, "remote PostgREST base URL")
	fs.StringVar(&cfg.RemoteAPIKey, "k", cfg.RemoteAPIKey, "remote anonymous API key")
	syncInterval := fs.Int("i", int(cfg.SyncInterval.Seconds()), "background sync interval (in seconds)")
	fs.StringVar(&cfg.WidgetPath, "w", cfg.WidgetPath, "widget payload file path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -i is whole seconds; keep a finer duration from JSON or env unless given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.SyncInterval = time.Duration(*syncInterval) * time.Second
		}
	})
	return nil
}
