package iroha

import "context"

// PoolWrapper is the immutable composite handed to the rest of the node
// after a successful PrepareConnectionPool.
//
// It co-owns the connection pool and the failover callback holder so that
// destroying the wrapper destroys both together: a holder dropped before its
// pool would leave the driver adapters pointing at dangling callbacks, which
// this ownership rule prevents structurally rather than by convention.
//
// The capability flag is computed once during construction and never
// re-probed, making it safe to read concurrently without synchronization.
type PoolWrapper struct {
	pool                         *ConnectionPool
	callbackHolder               *FailoverCallbackHolder
	supportsPreparedTransactions bool
}

// NewPoolWrapper binds a pool, its callback holder and the capability flag.
func NewPoolWrapper(pool *ConnectionPool, holder *FailoverCallbackHolder, supportsPreparedTransactions bool) *PoolWrapper {
	return &PoolWrapper{
		pool:                         pool,
		callbackHolder:               holder,
		supportsPreparedTransactions: supportsPreparedTransactions,
	}
}

// Pool returns the connection pool for checkout by higher layers.
func (w *PoolWrapper) Pool() *ConnectionPool {
	return w.pool
}

// SupportsPreparedTransactions reports whether the backend supports
// two-phase commit; callers use it to decide whether cross-session atomicity
// via prepared transactions is available.
func (w *PoolWrapper) SupportsPreparedTransactions() bool {
	return w.supportsPreparedTransactions
}

// Close tears down the pool. The callback holder stays reachable until the
// wrapper itself is collected, after every session is already closed.
func (w *PoolWrapper) Close(ctx context.Context) error {
	return w.pool.Close(ctx)
}
