package iroha

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/types"
)

// FailoverCallback is the per-session recovery logic invoked by the driver
// adapter when a live connection is detected as broken.
//
// The callback runs on the goroutine of whichever operation observed the
// failure. It consults its own ReconnectionStrategy, asks the session to
// re-establish the physical connection while the budget lasts, and on
// success replays the minimal per-connection setup through the restorer. It
// never re-runs schema bootstrap. Each callback owns its strategy instance
// and touches no state shared with other sessions, which is what lets many
// sessions fail and recover independently without cross-session locking.
type FailoverCallback struct {
	session  driver.Session
	restore  SessionRestorer
	strategy ReconnectionStrategy
	logger   types.Logger
	metrics  types.MetricsCollector
}

// Invoke runs one recovery cycle for the broken session.
//
// Parameters:
//   - cause: The error that exposed the breakage
//
// Returns:
//   - error: nil when the session was restored; otherwise an error wrapping
//     types.ErrReconnectionExhausted to surface to the failing operation's
//     caller
func (c *FailoverCallback) Invoke(cause error) error {
	ctx := context.Background()

	for c.strategy.CanReconnect() {
		c.metrics.IncReconnectAttempt()

		if err := c.session.Reconnect(ctx); err != nil {
			c.metrics.IncReconnectFailure()
			c.logger.Warn("reconnection attempt failed",
				"error", types.FormatDiagnostic(err.Error()),
			)

			continue
		}

		c.restore(ctx, c.session)
		c.metrics.IncReconnectSuccess()
		c.logger.Info("session restored after connection loss")

		return nil
	}

	c.metrics.IncReconnectExhausted()
	c.logger.Error("reconnection budget exhausted, session permanently failed",
		"cause", types.FormatDiagnostic(cause.Error()),
	)

	return fmt.Errorf("%w: %s", types.ErrReconnectionExhausted, types.FormatDiagnostic(cause.Error()))
}

// FailoverCallbackHolder owns every FailoverCallback created for a pool.
//
// The driver adapters retain non-owning references into these callbacks for
// the pool's lifetime, so the holder must not be dropped before the pool.
// PoolWrapper enforces this structurally by co-owning both.
type FailoverCallbackHolder struct {
	mu        sync.Mutex
	callbacks []*FailoverCallback
}

// NewFailoverCallbackHolder creates an empty holder.
func NewFailoverCallbackHolder() *FailoverCallbackHolder {
	return &FailoverCallbackHolder{}
}

// MakeFailoverCallback manufactures the callback for one session and takes
// ownership of it. Called once per session, the first time the session is
// wired for failover.
//
// Parameters:
//   - session: The session the callback is bound to
//   - restore: Procedure re-attaching post-reconnect configuration
//   - strategy: The session's own reconnection budget; never shared
//   - logger: Logger for this session's recovery events
//   - metrics: Collector for reconnection counters
//
// Returns:
//   - *FailoverCallback: The callback, retained by the holder
func (h *FailoverCallbackHolder) MakeFailoverCallback(
	session driver.Session,
	restore SessionRestorer,
	strategy ReconnectionStrategy,
	logger types.Logger,
	metrics types.MetricsCollector,
) *FailoverCallback {
	callback := &FailoverCallback{
		session:  session,
		restore:  restore,
		strategy: strategy,
		logger:   logger,
		metrics:  metrics,
	}

	h.mu.Lock()
	h.callbacks = append(h.callbacks, callback)
	h.mu.Unlock()

	return callback
}

// Size returns the number of callbacks the holder owns.
func (h *FailoverCallbackHolder) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.callbacks)
}
