package iroha

import "github.com/ecsantana76/iroha/types"

// Type aliases for convenience - re-export from types package.
type (
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	SessionError     = types.SessionError
)

// DefaultDatabaseName re-exports the default ledger database name.
const DefaultDatabaseName = types.DefaultDatabaseName
