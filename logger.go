package idxsort

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with idxsort-specific helpers.
// The pure Sort/Search core never logs; only the bulk path does.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
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

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
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

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLen adds a sequence length field to the logger.
func (l *Logger) WithLen(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("len", n),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSort logs one sort operation.
func (l *Logger) LogSort(ctx context.Context, n int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sort failed",
			"len", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "sort completed",
			"len", n,
			"elapsed", elapsed,
		)
	}
}

// LogSearch logs one search operation.
func (l *Logger) LogSearch(ctx context.Context, found bool, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"found", found,
			"elapsed", elapsed,
		)
	}
}

// LogSortAll logs a bulk sort over several sequences.
func (l *Logger) LogSortAll(ctx context.Context, count int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bulk sort failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "bulk sort completed",
			"count", count,
			"elapsed", elapsed,
		)
	}
}
