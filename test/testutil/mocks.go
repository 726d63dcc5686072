package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/types"
)

// ExecCall records one statement executed through a MockSession.
type ExecCall struct {
	SQL  string
	Args []any
}

// MockSession is a mock implementation of driver.Session for testing.
//
// By default every Exec succeeds and every QueryInt returns 0. The On*
// hooks inject custom behavior, including scripted connection failures.
type MockSession struct {
	mu         sync.Mutex
	execCalls  []ExecCall
	reconnects int
	closed     bool
	notice     driver.NoticeHandler
	failure    driver.FailureHook

	// Hooks for custom behavior
	OnExec      func(sql string, args ...any) error
	OnQueryInt  func(sql string, args ...any) (int, error)
	OnReconnect func() error
	OnClose     func() error
}

// Compile-time assertion that MockSession implements driver.Session.
var _ driver.Session = (*MockSession)(nil)

// NewMockSession creates a new mock session.
func NewMockSession() *MockSession {
	return &MockSession{}
}

// Exec records the statement and runs the OnExec hook when set.
func (m *MockSession) Exec(_ context.Context, sql string, args ...any) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return types.ErrSessionClosed
	}
	m.execCalls = append(m.execCalls, ExecCall{SQL: sql, Args: args})
	hook := m.OnExec
	m.mu.Unlock()

	if hook != nil {
		return hook(sql, args...)
	}

	return nil
}

// QueryInt runs the OnQueryInt hook when set, returning 0 otherwise.
func (m *MockSession) QueryInt(_ context.Context, sql string, args ...any) (int, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, types.ErrSessionClosed
	}
	hook := m.OnQueryInt
	m.mu.Unlock()

	if hook != nil {
		return hook(sql, args...)
	}

	return 0, nil
}

// Reconnect counts the attempt and runs the OnReconnect hook when set.
func (m *MockSession) Reconnect(_ context.Context) error {
	m.mu.Lock()
	m.reconnects++
	hook := m.OnReconnect
	m.mu.Unlock()

	if hook != nil {
		return hook()
	}

	return nil
}

// SetNoticeHandler stores the handler for later inspection.
func (m *MockSession) SetNoticeHandler(handler driver.NoticeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notice = handler
}

// SetFailureHook stores the hook for later inspection.
func (m *MockSession) SetFailureHook(hook driver.FailureHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = hook
}

// Close marks the session closed and runs the OnClose hook when set.
func (m *MockSession) Close(_ context.Context) error {
	m.mu.Lock()
	m.closed = true
	hook := m.OnClose
	m.mu.Unlock()

	if hook != nil {
		return hook()
	}

	return nil
}

// ExecCalls returns a copy of the statements executed so far.
func (m *MockSession) ExecCalls() []ExecCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]ExecCall(nil), m.execCalls...)
}

// Reconnects returns how many reconnection attempts the session has seen.
func (m *MockSession) Reconnects() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.reconnects
}

// Closed reports whether Close has been called.
func (m *MockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closed
}

// NoticeHandler returns the currently installed notice handler, or nil.
func (m *MockSession) NoticeHandler() driver.NoticeHandler {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.notice
}

// EmitNotice delivers a server notice through the installed handler.
func (m *MockSession) EmitNotice(message string) {
	if handler := m.NoticeHandler(); handler != nil {
		handler(message)
	}
}

// TriggerFailure simulates the driver detecting a broken connection: it
// invokes the installed failure hook on the calling goroutine, exactly as
// the pg adapter would.
func (m *MockSession) TriggerFailure(cause error) error {
	m.mu.Lock()
	hook := m.failure
	m.mu.Unlock()

	if hook == nil {
		return errors.New("testutil: no failure hook installed")
	}

	return hook(cause)
}

// MockConnector is a mock implementation of driver.Connector.
//
// Open produces a fresh MockSession per call. FailAt makes the N-th open
// (zero-based) fail, for exercising all-or-nothing pool creation.
type MockConnector struct {
	mu       sync.Mutex
	opened   []string
	sessions []*MockSession

	// FailAt makes the open with this zero-based index fail. Negative
	// values disable injected failures.
	FailAt int

	// OpenErr is the error returned by an injected failure.
	OpenErr error

	// OnOpen overrides session creation entirely when set.
	OnOpen func(options string) (driver.Session, error)
}

// Compile-time assertion that MockConnector implements driver.Connector.
var _ driver.Connector = (*MockConnector)(nil)

// NewMockConnector creates a connector that never fails.
func NewMockConnector() *MockConnector {
	return &MockConnector{FailAt: -1}
}

// Open returns a new mock session, or the scripted failure.
func (c *MockConnector) Open(_ context.Context, options string) (driver.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := len(c.opened)
	c.opened = append(c.opened, options)

	if c.OnOpen != nil {
		return c.OnOpen(options)
	}

	if c.FailAt >= 0 && index == c.FailAt {
		err := c.OpenErr
		if err == nil {
			err = errors.New("testutil: injected open failure")
		}

		return nil, err
	}

	session := NewMockSession()
	c.sessions = append(c.sessions, session)

	return session, nil
}

// OpenedOptions returns the options strings passed to Open so far.
func (c *MockConnector) OpenedOptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.opened...)
}

// Sessions returns the sessions produced so far, in open order.
func (c *MockConnector) Sessions() []*MockSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]*MockSession(nil), c.sessions...)
}

// RecordingLogger is a types.Logger that captures messages for assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level         string
	Message       string
	KeysAndValues []any
}

// Compile-time assertion that RecordingLogger implements types.Logger.
var _ types.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, keysAndValues []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: msg, KeysAndValues: keysAndValues})
}

// Debug captures a debug entry.
func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record("debug", msg, keysAndValues)
}

// Info captures an info entry.
func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record("info", msg, keysAndValues)
}

// Warn captures a warn entry.
func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record("warn", msg, keysAndValues)
}

// Error captures an error entry.
func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record("error", msg, keysAndValues)
}

// Fatal captures a fatal entry without exiting.
func (l *RecordingLogger) Fatal(msg string, keysAndValues ...any) {
	l.record("fatal", msg, keysAndValues)
}

// Entries returns a copy of the captured log entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LogEntry(nil), l.entries...)
}

// HasMessage reports whether any entry at the given level contains the
// given message.
func (l *RecordingLogger) HasMessage(level, msg string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}

	return false
}
