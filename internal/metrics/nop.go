// Package metrics provides internal metrics utilities for the iroha storage
// library.
package metrics

import "github.com/ecsantana76/iroha/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// ----------------------
// Pool Construction
// ----------------------

// IncSessionOpened discards the metric.
func (m *NopMetrics) IncSessionOpened() {}

// IncSessionOpenError discards the metric.
func (m *NopMetrics) IncSessionOpenError() {}

// IncBootstrapTotal discards the metric.
func (m *NopMetrics) IncBootstrapTotal() {}

// SetPoolSize discards the metric.
func (m *NopMetrics) SetPoolSize(_ int) {}

// ----------------------
// Failover
// ----------------------

// IncReconnectAttempt discards the metric.
func (m *NopMetrics) IncReconnectAttempt() {}

// IncReconnectSuccess discards the metric.
func (m *NopMetrics) IncReconnectSuccess() {}

// IncReconnectFailure discards the metric.
func (m *NopMetrics) IncReconnectFailure() {}

// IncReconnectExhausted discards the metric.
func (m *NopMetrics) IncReconnectExhausted() {}

// ----------------------
// Diagnostics
// ----------------------

// IncNoticeTotal discards the metric.
func (m *NopMetrics) IncNoticeTotal() {}
