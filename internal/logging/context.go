package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context.
// If no logger is found, returns a disabled logger (no-op).
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field.
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithNodeKey creates a child logger with a node_key field.
func WithNodeKey(ctx context.Context, key string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("node_key", key).Logger()
	return WithContext(ctx, childLogger)
}

// WithOperation creates a child logger with an op field.
func WithOperation(ctx context.Context, op string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("op", op).Logger()
	return WithContext(ctx, childLogger)
}

// WithDestination creates a child logger with destination kind and route
// fields.
func WithDestination(ctx context.Context, kind, route string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("dest_kind", kind).Str("dest_route", route).Logger()
	return WithContext(ctx, childLogger)
}
