// Package logging defines the structured-logging interface the engine's
// components depend on, decoupled from any concrete backend.
package logging

import "context"

// Logger is a context-aware structured logger. The variadic args are
// key-value pairs:
//
//	log.Warn(ctx, "feed fetch failed", "url", url, "error", err)
type Logger interface {
	// Debug logs diagnostic detail, normally suppressed.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, such as a masked
	// replication failure.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given key-value
	// pairs.
	With(args ...any) Logger
}
