package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/ecsantana76/iroha/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	init := iroha.NewConnectionPoolInitializer(iroha.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Pool Construction
	// ----------------------

	// IncSessionOpened increments the counter of successfully opened sessions.
	IncSessionOpened()

	// IncSessionOpenError increments the counter of failed session opens.
	IncSessionOpenError()

	// IncBootstrapTotal increments the counter of schema bootstrap executions.
	// A healthy deployment sees exactly one increment per prepared pool.
	IncBootstrapTotal()

	// SetPoolSize sets the gauge holding the size of the active pool.
	SetPoolSize(size int)

	// ----------------------
	// Failover
	// ----------------------

	// IncReconnectAttempt increments the counter of reconnection attempts.
	IncReconnectAttempt()

	// IncReconnectSuccess increments the counter of successful reconnections.
	IncReconnectSuccess()

	// IncReconnectFailure increments the counter of failed reconnection attempts.
	IncReconnectFailure()

	// IncReconnectExhausted increments the counter of sessions whose
	// reconnection budget was spent without recovering the connection.
	IncReconnectExhausted()

	// ----------------------
	// Diagnostics
	// ----------------------

	// IncNoticeTotal increments the counter of server notices received.
	IncNoticeTotal()
}
