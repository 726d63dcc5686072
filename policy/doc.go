// Package policy provides reconnection strategies for the iroha connection
// pool.
//
// A reconnection strategy is the bounded-retry budget consulted by a
// session's failover callback. All strategies implement the
// types.ReconnectionStrategy interface:
//
//	type ReconnectionStrategy interface {
//	    CanReconnect() bool
//	}
//
// Available strategies:
//
//   - [KTimes]: Grants at most K attempts per session, then refuses
//     permanently. K=0 fails immediately on the first connection loss.
//
// Strategies are manufactured per session by a factory so that no two
// sessions ever share a retry budget:
//
//	factory := policy.NewKTimesFactory(3)
//	wrapper := init.PrepareConnectionPool(ctx, factory, options, 10)
package policy
