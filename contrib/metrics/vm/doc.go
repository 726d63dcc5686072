// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "iroha":
//
//	collector := vm.New()
//	init := iroha.NewConnectionPoolInitializer(
//	    iroha.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_sessions_opened_total
//   - myapp_reconnect_attempts_total
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// # Metrics Provided
//
// Pool construction:
//   - {prefix}_sessions_opened_total - Counter of successfully opened sessions
//   - {prefix}_session_open_errors_total - Counter of failed session opens
//   - {prefix}_schema_bootstrap_total - Counter of schema bootstrap executions
//   - {prefix}_pool_size - Gauge holding the size of the active pool
//
// Failover:
//   - {prefix}_reconnect_attempts_total - Counter of reconnection attempts
//   - {prefix}_reconnect_successes_total - Counter of restored sessions
//   - {prefix}_reconnect_failures_total - Counter of failed attempts
//   - {prefix}_reconnect_exhausted_total - Counter of spent retry budgets
//
// Diagnostics:
//   - {prefix}_notices_total - Counter of server notices received
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics documentation.
//
// The metrics are registered with a dedicated Set that is registered
// globally, allowing standard Prometheus scraping.
package vm
