package vm

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/ecsantana76/iroha/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "iroha"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time for optimal performance.
// Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	// Pool construction metrics
	sessionsOpened    *metrics.Counter
	sessionOpenErrors *metrics.Counter
	bootstrapTotal    *metrics.Counter
	poolSize          atomic.Int64

	// Failover metrics
	reconnectAttempts  *metrics.Counter
	reconnectSuccesses *metrics.Counter
	reconnectFailures  *metrics.Counter
	reconnectExhausted *metrics.Counter

	// Diagnostics metrics
	noticeTotal *metrics.Counter
}

// Compile-time assertion that Collector implements types.MetricsCollector.
var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally.
// All metrics are pre-created at initialization for optimal performance.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	init := iroha.NewConnectionPoolInitializer(iroha.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "iroha",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	// Pool construction metrics
	c.sessionsOpened = c.set.NewCounter(fmt.Sprintf(`%s_sessions_opened_total`, p))
	c.sessionOpenErrors = c.set.NewCounter(fmt.Sprintf(`%s_session_open_errors_total`, p))
	c.bootstrapTotal = c.set.NewCounter(fmt.Sprintf(`%s_schema_bootstrap_total`, p))
	c.set.NewGauge(fmt.Sprintf(`%s_pool_size`, p), func() float64 {
		return float64(c.poolSize.Load())
	})

	// Failover metrics
	c.reconnectAttempts = c.set.NewCounter(fmt.Sprintf(`%s_reconnect_attempts_total`, p))
	c.reconnectSuccesses = c.set.NewCounter(fmt.Sprintf(`%s_reconnect_successes_total`, p))
	c.reconnectFailures = c.set.NewCounter(fmt.Sprintf(`%s_reconnect_failures_total`, p))
	c.reconnectExhausted = c.set.NewCounter(fmt.Sprintf(`%s_reconnect_exhausted_total`, p))

	// Diagnostics metrics
	c.noticeTotal = c.set.NewCounter(fmt.Sprintf(`%s_notices_total`, p))
}

// IncSessionOpened increments the opened-sessions counter.
func (c *Collector) IncSessionOpened() {
	c.sessionsOpened.Inc()
}

// IncSessionOpenError increments the failed-opens counter.
func (c *Collector) IncSessionOpenError() {
	c.sessionOpenErrors.Inc()
}

// IncBootstrapTotal increments the schema bootstrap counter.
func (c *Collector) IncBootstrapTotal() {
	c.bootstrapTotal.Inc()
}

// SetPoolSize sets the pool size gauge.
func (c *Collector) SetPoolSize(size int) {
	c.poolSize.Store(int64(size))
}

// IncReconnectAttempt increments the reconnection attempts counter.
func (c *Collector) IncReconnectAttempt() {
	c.reconnectAttempts.Inc()
}

// IncReconnectSuccess increments the successful reconnections counter.
func (c *Collector) IncReconnectSuccess() {
	c.reconnectSuccesses.Inc()
}

// IncReconnectFailure increments the failed reconnection attempts counter.
func (c *Collector) IncReconnectFailure() {
	c.reconnectFailures.Inc()
}

// IncReconnectExhausted increments the exhausted-budget counter.
func (c *Collector) IncReconnectExhausted() {
	c.reconnectExhausted.Inc()
}

// IncNoticeTotal increments the server notices counter.
func (c *Collector) IncNoticeTotal() {
	c.noticeTotal.Inc()
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}
