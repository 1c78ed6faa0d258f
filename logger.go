package kmeanspp

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kmeanspp-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSeed logs a seeding pass.
func (l *Logger) LogSeed(ctx context.Context, k int, ids []int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"k", k,
			"initial_ids", ids,
		)
	}
}

// LogRefine logs a refinement.
func (l *Logger) LogRefine(ctx context.Context, iterations int, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "refinement failed",
			"error", err,
		)
	} else if !converged {
		l.WarnContext(ctx, "refinement stopped at iteration cap",
			"iterations", iterations,
		)
	} else {
		l.DebugContext(ctx, "refinement converged",
			"iterations", iterations,
		)
	}
}

// LogRun logs a full clustering run. Point count, dimension and k come
// from the logger's fields.
func (l *Logger) LogRun(ctx context.Context, inertia float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "clustering completed",
			"inertia", inertia,
		)
	}
}
