// Package logger defines the structured logging interface used throughout the
// gateway. The zap-backed implementation lives in
// internal/infrastructure/monitoring; this package only carries the contract
// and a no-op logger for tests.
package logger

import "context"

// Fields is a bag of structured log fields.
type Fields map[string]interface{}

// Logger is the structured logging contract. Implementations append the
// request trace id from the context when present.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Fields)
	Info(ctx context.Context, msg string, fields ...Fields)
	Warn(ctx context.Context, msg string, fields ...Fields)
	Error(ctx context.Context, msg string, err error, fields ...Fields)
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithComponent returns a logger scoped to a named component.
	WithComponent(component string) Logger
	// WithFields returns a logger that always carries the given fields.
	WithFields(fields Fields) Logger
}

// ================================================================================
// No-op Logger
// ================================================================================

type nopLogger struct{}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(context.Context, string, ...Fields)        {}
func (nopLogger) Info(context.Context, string, ...Fields)         {}
func (nopLogger) Warn(context.Context, string, ...Fields)         {}
func (nopLogger) Error(context.Context, string, error, ...Fields) {}
func (nopLogger) Fatal(context.Context, string, error, ...Fields) {}
func (n nopLogger) WithComponent(string) Logger                   { return n }
func (n nopLogger) WithFields(Fields) Logger                      { return n }
