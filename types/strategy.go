package types

// ReconnectionStrategy is a bounded-retry policy governing how many recovery
// attempts one session may make.
//
// A strategy instance belongs to exactly one session's failover callback and
// is never shared: sharing would let one session's outage silently consume
// another session's retry budget. Each granted attempt decrements the
// remaining budget; once the budget reaches zero the strategy refuses
// permanently, with no time-based reset.
type ReconnectionStrategy interface {
	// CanReconnect reports whether one more reconnection attempt is
	// permitted, consuming one unit of budget when it is.
	//
	// Returns:
	//   - bool: true if the attempt is granted, false once exhausted
	CanReconnect() bool
}

// ReconnectionStrategyFactory manufactures one fresh, independently-counted
// strategy instance per session.
type ReconnectionStrategyFactory interface {
	// Create returns a new strategy with a full budget.
	//
	// Returns:
	//   - ReconnectionStrategy: An instance owned by a single session
	Create() ReconnectionStrategy
}
