// Package types provides shared types and errors for the iroha storage library.
//
// This is a "leaf" package with no imports from other iroha packages,
// allowing it to be imported by any package without causing import cycles.
package types

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultDatabaseName is the database name used when the connection options
// do not carry an explicit dbname.
const DefaultDatabaseName = "iroha_default"

// PreparedBlockName returns the deterministic identifier of the prepared
// transaction that holds a block staged for two-phase commit.
//
// The exact format is a compatibility contract: the startup rollback, the
// two-phase commit path and external tooling all derive the same name from
// the database name.
//
// Parameters:
//   - dbname: The target database name
//
// Returns:
//   - string: The prepared transaction identifier
func PreparedBlockName(dbname string) string {
	return "prepared_block" + dbname
}

// FormatDiagnostic sanitizes a driver diagnostic message for logging.
//
// PostgreSQL error and notice texts frequently span multiple lines; carriage
// returns and line feeds are replaced with spaces so that every diagnostic
// stays a single log line and can be surfaced to a caller verbatim.
//
// Parameters:
//   - message: The raw driver message
//
// Returns:
//   - string: The message with all line breaks replaced by spaces
func FormatDiagnostic(message string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, message)
}

// Logger defines the structured logging interface used across the library.
//
// The interface follows zap's sugared key/value convention: methods accept a
// message followed by alternating key-value pairs.
type Logger interface {
	// Debug logs a message at debug level with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at info level with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at warn level with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at error level with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at fatal level with optional key-value pairs.
	Fatal(msg string, keysAndValues ...any)
}

// Sentinel errors for common failure scenarios.
var (
	// ErrReconnectionExhausted indicates a session's reconnection budget is
	// spent. Once returned, every further recovery attempt on that session
	// fails with the same error.
	ErrReconnectionExhausted = errors.New("iroha: reconnection attempts exhausted")

	// ErrSessionClosed indicates an operation was attempted on a closed session.
	ErrSessionClosed = errors.New("iroha: session is closed")

	// ErrConnectionBroken indicates the physical connection to the backend
	// was detected as broken during an operation.
	ErrConnectionBroken = errors.New("iroha: connection to PostgreSQL broken")

	// ErrPoolClosed indicates an acquire was attempted on a closed pool.
	ErrPoolClosed = errors.New("iroha: connection pool is closed")

	// ErrInvalidPoolSize indicates a pool size of zero or less was requested.
	ErrInvalidPoolSize = errors.New("iroha: pool size must be positive")
)

// SessionError wraps an error from a specific pool session.
type SessionError struct {
	// Index is the session's position in the pool.
	Index int

	// Operation describes what operation failed.
	Operation string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return "iroha: session " + strconv.Itoa(e.Index) + " " + e.Operation + " failed: " + e.Cause.Error()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *SessionError) Unwrap() error {
	return e.Cause
}
