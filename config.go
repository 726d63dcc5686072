package iroha

import (
	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/driver/pg"
	"github.com/ecsantana76/iroha/internal/logging"
	"github.com/ecsantana76/iroha/internal/metrics"
	"github.com/ecsantana76/iroha/types"
)

// Config holds configuration for the connection pool initializer.
type Config struct {
	Connector driver.Connector
	Logger    types.Logger
	Metrics   MetricsCollector
	Schema    string
}

// DefaultConfig returns a Config with sensible defaults.
//
// Defaults:
//   - Connector: pgx-backed PostgreSQL connector
//   - Logger: no-op logger
//   - Metrics: no-op collector
//   - Schema: the ledger bootstrap DDL from DefaultSchema()
//
// Returns:
//   - *Config: Configuration with default settings
func DefaultConfig() *Config {
	return &Config{
		Connector: pg.NewConnector(),
		Logger:    logging.NewNopLogger(),
		Metrics:   metrics.NewNopMetrics(),
		Schema:    DefaultSchema(),
	}
}

// Option configures a Config.
type Option func(*Config)

// WithConnector sets the driver connector used to open sessions.
//
// Parameters:
//   - connector: The connector implementation
//
// Returns:
//   - Option: Configuration option
func WithConnector(connector driver.Connector) Option {
	return func(c *Config) {
		c.Connector = connector
	}
}

// WithLogger sets the structured logger.
//
// If not set, a no-op logger is used that discards all messages.
// The logger interface follows zap's sugared key/value style, so a thin
// adapter over zap.SugaredLogger (Debugw, Infow, ...) satisfies it.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics collector.
//
// If not set, a no-op collector is used that discards all metrics.
// Use contrib/metrics/vm.New() for VictoriaMetrics integration.
//
// Parameters:
//   - collector: The metrics collector implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector MetricsCollector) Option {
	return func(c *Config) {
		c.Metrics = collector
	}
}

// WithSchema overrides the schema-bootstrap script executed exactly once on
// session 0. The script is opaque configuration: this layer executes it but
// never interprets its contents.
//
// Parameters:
//   - schema: The DDL text to run during bootstrap
//
// Returns:
//   - Option: Configuration option
func WithSchema(schema string) Option {
	return func(c *Config) {
		c.Schema = schema
	}
}
