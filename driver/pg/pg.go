// Package pg provides the pgx-backed implementation of the driver
// interfaces.
//
// Each Session owns a single *pgx.Conn. The adapter translates pgx's native
// fault signaling (errors and closed-connection state) into a single
// invocation of the session's failure hook, so the layers above never see a
// raw driver fault for a broken connection without the hook having run
// first.
package pg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/types"
)

// Connector opens pgx-backed sessions.
type Connector struct{}

// Compile-time assertion that Connector implements driver.Connector.
var _ driver.Connector = (*Connector)(nil)

// NewConnector creates a new pgx connector.
//
// Returns:
//   - *Connector: A connector producing one *pgx.Conn per session
func NewConnector() *Connector {
	return &Connector{}
}

// Open establishes one new session using a space-separated key=value
// connection options string (the keyword/value DSN form pgx parses natively).
//
// Parameters:
//   - ctx: Context for connection establishment
//   - options: Connection options string
//
// Returns:
//   - driver.Session: The opened session
//   - error: nil on success, the pgx error otherwise
func (c *Connector) Open(ctx context.Context, options string) (driver.Session, error) {
	config, err := pgx.ParseConfig(options)
	if err != nil {
		return nil, err
	}

	s := &Session{config: config}

	// The notice processor must be registered before the connection is
	// established; it dispatches to whatever handler the session currently
	// carries.
	config.OnNotice = func(_ *pgconn.PgConn, n *pgconn.Notice) {
		if s.notice != nil {
			s.notice(n.Severity + ": " + n.Message)
		}
	}

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	s.conn = conn

	return s, nil
}

// Session is a single logical PostgreSQL connection backed by pgx.
//
// A Session is bound to one pool slot and is not safe for concurrent use.
type Session struct {
	conn    *pgx.Conn
	config  *pgx.ConnConfig
	notice  driver.NoticeHandler
	failure driver.FailureHook
	closed  bool
}

// Compile-time assertion that Session implements driver.Session.
var _ driver.Session = (*Session)(nil)

// Exec executes a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, sql string, args ...any) error {
	if s.closed {
		return types.ErrSessionClosed
	}

	return s.guard(ctx, func() error {
		_, err := s.conn.Exec(ctx, sql, args...)
		return err
	})
}

// QueryInt executes a query expected to produce a single integer value.
//
// SHOW commands return text; textual results that parse as integers are
// accepted alongside native integer types.
func (s *Session) QueryInt(ctx context.Context, sql string, args ...any) (int, error) {
	if s.closed {
		return 0, types.ErrSessionClosed
	}

	var value int
	err := s.guard(ctx, func() error {
		var raw any
		if err := s.conn.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
			return err
		}

		parsed, err := scalarToInt(raw)
		if err != nil {
			return err
		}
		value = parsed

		return nil
	})

	return value, err
}

// Reconnect discards the current physical connection and dials a new one
// using the options the session was originally opened with. The notice
// processor registered at open time carries over because it lives on the
// retained config.
func (s *Session) Reconnect(ctx context.Context) error {
	if s.closed {
		return types.ErrSessionClosed
	}

	if s.conn != nil && !s.conn.IsClosed() {
		_ = s.conn.Close(ctx)
	}

	conn, err := pgx.ConnectConfig(ctx, s.config)
	if err != nil {
		return err
	}
	s.conn = conn

	return nil
}

// SetNoticeHandler installs the handler for informational server messages.
func (s *Session) SetNoticeHandler(handler driver.NoticeHandler) {
	s.notice = handler
}

// SetFailureHook installs the hook invoked on broken-connection detection.
func (s *Session) SetFailureHook(hook driver.FailureHook) {
	s.failure = hook
}

// Close terminates the session.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.conn == nil {
		return nil
	}

	return s.conn.Close(ctx)
}

// guard runs op and, when the failure exposes a broken connection, hands
// control to the failure hook. A nil hook return means the hook restored the
// session, and the in-flight operation is retried exactly once on the new
// connection.
func (s *Session) guard(ctx context.Context, op func() error) error {
	err := op()
	if err == nil {
		return nil
	}

	if !s.connectionBroken(err) {
		return err
	}

	if s.failure == nil {
		return fmt.Errorf("%w: %s", types.ErrConnectionBroken, err)
	}

	if hookErr := s.failure(err); hookErr != nil {
		return hookErr
	}

	return op()
}

// connectionBroken reports whether err indicates loss of the physical
// connection rather than a server-side statement failure.
func (s *Session) connectionBroken(err error) bool {
	if s.conn != nil && s.conn.IsClosed() {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// scalarToInt normalizes the driver representations a single-value query can
// produce into an int.
func scalarToInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case int16:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case []byte:
		return strconv.Atoi(strings.TrimSpace(string(v)))
	default:
		return 0, fmt.Errorf("pg: unexpected scalar type %T", raw)
	}
}
