package logging

import "github.com/ecsantana76/iroha/types"

// NamedLogger decorates a logger with a fixed name, attached as a "logger"
// key-value pair on every message. It is used to give each pool session its
// own identifiable logger ("connection 0", "connection 1", ...).
type NamedLogger struct {
	base types.Logger
	name string
}

// Compile-time assertion that NamedLogger implements types.Logger.
var _ types.Logger = (*NamedLogger)(nil)

// WithName wraps base so that every message carries the given name.
//
// Parameters:
//   - base: The logger to decorate
//   - name: The name attached to every message
//
// Returns:
//   - *NamedLogger: The decorated logger
func WithName(base types.Logger, name string) *NamedLogger {
	return &NamedLogger{base: base, name: name}
}

// Debug logs at debug level with the logger name attached.
func (l *NamedLogger) Debug(msg string, keysAndValues ...any) {
	l.base.Debug(msg, l.with(keysAndValues)...)
}

// Info logs at info level with the logger name attached.
func (l *NamedLogger) Info(msg string, keysAndValues ...any) {
	l.base.Info(msg, l.with(keysAndValues)...)
}

// Warn logs at warn level with the logger name attached.
func (l *NamedLogger) Warn(msg string, keysAndValues ...any) {
	l.base.Warn(msg, l.with(keysAndValues)...)
}

// Error logs at error level with the logger name attached.
func (l *NamedLogger) Error(msg string, keysAndValues ...any) {
	l.base.Error(msg, l.with(keysAndValues)...)
}

// Fatal logs at fatal level with the logger name attached.
func (l *NamedLogger) Fatal(msg string, keysAndValues ...any) {
	l.base.Fatal(msg, l.with(keysAndValues)...)
}

func (l *NamedLogger) with(keysAndValues []any) []any {
	out := make([]any, 0, len(keysAndValues)+2)
	out = append(out, "logger", l.name)

	return append(out, keysAndValues...)
}
