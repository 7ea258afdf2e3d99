// Package logging is the structured-logging seam shared by the task manager
// server components. The only implementation wraps log/slog.
package logging

import "context"

// Logger takes a context on every call so handlers may attach request-scoped
// attributes. Args alternate key and value:
//
//	logger.Info(ctx, "task created", "task_id", id, "user_id", sub)
//
// Callers must never pass passwords, password hashes or bearer tokens.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record,
	// typically With("module", "httpapi").
	With(args ...any) Logger
}
