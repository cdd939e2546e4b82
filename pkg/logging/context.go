package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
	// archiveKey is the context key for the archive path being processed.
	archiveKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithArchive tags the context and its logger with the archive path, so
// every log line emitted while processing one file identifies that file.
func WithArchive(ctx context.Context, path string) context.Context {
	ctx = context.WithValue(ctx, archiveKey, path)

	logger := FromContext(ctx)
	newLogger := logger.With().Str("archive", path).Logger()
	return WithLogger(ctx, &newLogger)
}

// Archive extracts the archive path from context.
func Archive(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if path, ok := ctx.Value(archiveKey).(string); ok {
		return path
	}
	return ""
}
