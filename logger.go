package meshdist

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with meshdist-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSource adds the trigger source field to the logger.
func (l *Logger) WithSource(src Source) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", src.String()),
	}
}

// LogRefresh logs a completed refresh.
func (l *Logger) LogRefresh(ctx context.Context, stats RefreshStats, d time.Duration) {
	l.DebugContext(ctx, "refresh completed",
		"vertices", stats.Vertices,
		"groups", stats.Groups,
		"candidates", stats.Candidates,
		"pairs", stats.Pairs,
		"skipped", stats.Skipped,
		"locked", stats.Locked,
		"duration", d,
	)
}

// LogActivate logs a session activation attempt.
func (l *Logger) LogActivate(ctx context.Context, pairs int, err error) {
	if err != nil {
		l.WarnContext(ctx, "activation failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "session activated",
			"pairs", pairs,
		)
	}
}

// LogLock logs a lock selection operation.
func (l *Logger) LogLock(ctx context.Context, vertices, meshes int, err error) {
	if err != nil {
		l.WarnContext(ctx, "lock selection failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "selection locked",
			"vertices", vertices,
			"meshes", meshes,
		)
	}
}

// LogSkip logs a scheduled refresh skipped because nothing moved.
func (l *Logger) LogSkip(ctx context.Context, src Source) {
	l.DebugContext(ctx, "refresh skipped, vertices unchanged",
		"source", src.String(),
	)
}
