package iroha

import (
	"context"
	"sync/atomic"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/types"
)

// ConnectionPool is an ordered, fixed-length sequence of sessions. The
// length is fixed at construction and the pool is never resized.
//
// After PrepareConnectionPool hands the pool over, up to Size() sessions may
// be used in parallel by independent callers. Checkout here is a simple
// round-robin over the slots; wait-when-exhausted behavior belongs to the
// external pool consumer.
type ConnectionPool struct {
	sessions []driver.Session
	next     atomic.Uint64
	closed   atomic.Bool
}

// newConnectionPool wraps an already-opened ordered session list.
func newConnectionPool(sessions []driver.Session) *ConnectionPool {
	return &ConnectionPool{sessions: sessions}
}

// Size returns the fixed number of sessions in the pool.
func (p *ConnectionPool) Size() int {
	return len(p.sessions)
}

// At returns the session at index i. Index order is the order in which
// sessions were opened; session 0 is the one that ran schema bootstrap.
//
// Parameters:
//   - i: Session index in [0, Size())
//
// Returns:
//   - driver.Session: The session occupying that slot
func (p *ConnectionPool) At(i int) driver.Session {
	return p.sessions[i]
}

// Acquire returns the next session in round-robin order.
//
// Returns:
//   - driver.Session: The selected session
//   - error: types.ErrPoolClosed after Close
func (p *ConnectionPool) Acquire() (driver.Session, error) {
	if p.closed.Load() {
		return nil, types.ErrPoolClosed
	}

	n := p.next.Add(1) - 1

	return p.sessions[n%uint64(len(p.sessions))], nil
}

// Close terminates every session in the pool. The first error encountered
// is returned, but all sessions are closed regardless.
func (p *ConnectionPool) Close(ctx context.Context) error {
	if p.closed.Swap(true) {
		return nil
	}

	var firstErr error
	for _, s := range p.sessions {
		if err := s.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
