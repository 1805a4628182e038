// Package logging defines the structured-logging interface used by the sync
// engine and its collaborators, plus a log/slog backed implementation.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key-value pairs, e.g.:
//
//	log.Warn(ctx, "remote push failed", "table", "user_favorites", "err", err)
type Logger interface {
	// Debug logs diagnostic detail (cache hits, page loads).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a recoverable failure, e.g. a best-effort remote push.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure the caller will see.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
