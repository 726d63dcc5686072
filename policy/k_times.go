package policy

import (
	"sync/atomic"

	"github.com/ecsantana76/iroha/types"
)

// KTimes is a reconnection strategy granting at most K attempts over the
// lifetime of one session.
//
// Each granted attempt consumes one unit of budget. Once the budget reaches
// zero, every further query is refused permanently; there is no time-based
// reset. K=0 means "never reconnect, fail immediately".
//
// The counter is atomic so a misused strategy cannot corrupt its budget, but
// a strategy still belongs to exactly one session.
type KTimes struct {
	remaining atomic.Int64
}

// Compile-time assertion that KTimes implements types.ReconnectionStrategy.
var _ types.ReconnectionStrategy = (*KTimes)(nil)

// NewKTimes creates a strategy with a budget of k attempts.
//
// Parameters:
//   - k: Maximum number of reconnection attempts; 0 refuses immediately
//
// Returns:
//   - *KTimes: A fresh strategy with a full budget
func NewKTimes(k uint) *KTimes {
	s := &KTimes{}
	s.remaining.Store(int64(k))

	return s
}

// CanReconnect consumes one unit of budget when any remains.
//
// Returns:
//   - bool: true if the attempt is granted, false once exhausted
func (s *KTimes) CanReconnect() bool {
	for {
		remaining := s.remaining.Load()
		if remaining <= 0 {
			return false
		}
		if s.remaining.CompareAndSwap(remaining, remaining-1) {
			return true
		}
	}
}

// Remaining returns the unspent budget.
func (s *KTimes) Remaining() int {
	return int(s.remaining.Load())
}

// KTimesFactory manufactures one fresh, independently-counted KTimes
// strategy per session. Strategies are never shared across sessions: one
// session's outage must not consume another session's retry budget.
type KTimesFactory struct {
	k uint
}

// Compile-time assertion that KTimesFactory implements
// types.ReconnectionStrategyFactory.
var _ types.ReconnectionStrategyFactory = (*KTimesFactory)(nil)

// NewKTimesFactory creates a factory producing strategies with a budget of
// k attempts each.
//
// Parameters:
//   - k: Budget given to every manufactured strategy
//
// Returns:
//   - *KTimesFactory: The factory
func NewKTimesFactory(k uint) *KTimesFactory {
	return &KTimesFactory{k: k}
}

// Create returns a new strategy with a full budget.
func (f *KTimesFactory) Create() types.ReconnectionStrategy {
	return NewKTimes(f.k)
}
