// Package driver defines the database-facing session abstraction that the
// pool bootstrap layer orchestrates.
//
// The core library never talks to a concrete PostgreSQL driver directly; it
// calls into these interfaces and receives plain success/failure signals.
// The pgx-backed implementation lives in driver/pg, and test doubles live in
// test/testutil.
package driver

import "context"

// NoticeHandler is invoked by the driver once per informational server
// message, on the goroutine of whichever operation triggered the message.
//
// The message is raw driver text; callers are expected to sanitize it before
// logging (see types.FormatDiagnostic).
type NoticeHandler func(message string)

// FailureHook is invoked by the driver adapter when it detects that the
// physical connection broke during an operation. The invocation happens on
// the calling goroutine of the failing operation, not on a separate recovery
// goroutine.
//
// The hook receives the error that exposed the breakage. A nil return means
// the session was restored and the adapter may retry the in-flight operation
// once; a non-nil return is surfaced to the operation's caller unchanged.
type FailureHook func(cause error) error

// Session is one live logical connection to the database.
//
// A Session is owned by exactly one pool slot and is not safe for concurrent
// use; concurrency across the pool comes from checking out distinct sessions.
type Session interface {
	// Exec executes a statement that returns no rows.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - sql: Statement text, with $1.. placeholders when args are given
	//   - args: Values to bind to placeholders
	//
	// Returns:
	//   - error: nil on success, the driver error otherwise
	Exec(ctx context.Context, sql string, args ...any) error

	// QueryInt executes a query expected to produce a single integer value.
	//
	// Textual results that parse as integers (such as the output of SHOW)
	// are accepted.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - sql: Query text, with $1.. placeholders when args are given
	//   - args: Values to bind to placeholders
	//
	// Returns:
	//   - int: The scalar result
	//   - error: nil on success, the driver error otherwise
	QueryInt(ctx context.Context, sql string, args ...any) (int, error)

	// Reconnect re-establishes the physical connection using the options the
	// session was originally opened with. The previous connection, if any,
	// is discarded.
	Reconnect(ctx context.Context) error

	// SetNoticeHandler installs the handler for informational server
	// messages. Passing nil removes the handler.
	SetNoticeHandler(handler NoticeHandler)

	// SetFailureHook installs the hook invoked on broken-connection
	// detection. Passing nil removes the hook.
	SetFailureHook(hook FailureHook)

	// Close terminates the session. Further operations return
	// types.ErrSessionClosed.
	Close(ctx context.Context) error
}

// Connector opens sessions against a backend described by a connection
// options string of space-separated key=value tokens (host, port, user,
// password, dbname, ...). The core treats the string as opaque text.
type Connector interface {
	// Open establishes one new session.
	//
	// Parameters:
	//   - ctx: Context for connection establishment
	//   - options: Connection options string, passed through to the driver
	//
	// Returns:
	//   - Session: The opened session
	//   - error: nil on success, the driver error otherwise
	Open(ctx context.Context, options string) (Session, error)
}
