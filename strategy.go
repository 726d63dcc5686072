package iroha

import (
	"context"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/types"
)

// Type aliases for convenience - re-export from types package.
type (
	// ReconnectionStrategy is a bounded-retry policy governing how many
	// recovery attempts one session may make. See types.ReconnectionStrategy.
	ReconnectionStrategy = types.ReconnectionStrategy

	// ReconnectionStrategyFactory manufactures one fresh strategy instance
	// per session. See types.ReconnectionStrategyFactory.
	ReconnectionStrategyFactory = types.ReconnectionStrategyFactory
)

// SessionRestorer replays the minimal per-connection setup on a session
// after a successful physical reconnection: it re-attaches the notice hook
// and nothing else. It never re-runs schema bootstrap.
type SessionRestorer func(ctx context.Context, session driver.Session)
