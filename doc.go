// Package iroha provides the resilient PostgreSQL bootstrap layer for a
// distributed-ledger node's relational storage.
//
// The package turns a connection options string into a ready-to-use pool of
// database sessions: it creates the ledger database when missing, opens every
// session eagerly, probes prepared-transaction support, rolls back any
// prepared transaction left dangling by a previous crash, runs the schema
// bootstrap exactly once, and wires per-session failover with a bounded
// reconnection budget.
//
// # Key Features
//
//   - All-or-Nothing Pool Creation: A pool either opens completely or not at all
//   - One-Time Schema Bootstrap: Idempotent DDL runs on the first session only
//   - Bounded Failover: Each session carries its own K-attempt reconnection budget
//   - Capability Probing: Two-phase commit support detected once at startup
//   - Result-Based Errors: Fallible operations return result.Result values
//     carrying sanitized single-line diagnostics
//
// # Basic Usage
//
//	options, err := iroha.ParsePostgresOptions(
//	    "host=127.0.0.1 port=5432 user=postgres dbname=iroha_data",
//	    iroha.DefaultDatabaseName, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	init := iroha.NewConnectionPoolInitializer(iroha.WithLogger(logger))
//
//	init.CreateDatabaseIfNotExist(ctx, options.DBName(), options.OptionsStringWithoutDBName()).Match(
//	    func(created bool) { /* database ready */ },
//	    func(diag string) { log.Fatal(diag) },
//	)
//
//	res := init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), options, 10)
//	wrapper, ok := res.ToValue()
//	if !ok {
//	    diag, _ := res.ToError()
//	    log.Fatal(diag)
//	}
//	defer wrapper.Close(ctx)
//
//	session, err := wrapper.Pool().Acquire()
//
// # Error Handling
//
// Operations that talk to the backend return result.Result values instead of
// plain errors. The error side is always a sanitized, single-line diagnostic
// string with control characters from server messages replaced, safe to hand
// to any logging collaborator.
//
// Driver-level faults never escape as panics. A broken connection triggers
// the session's failover callback; when its reconnection budget is exhausted
// the failing operation returns an error wrapping
// types.ErrReconnectionExhausted.
//
// # Sentinel Errors
//
// The types package defines sentinel errors for specific scenarios:
//
//   - types.ErrReconnectionExhausted: Reconnection budget spent without success
//   - types.ErrSessionClosed: Operation attempted on a closed session
//   - types.ErrPoolClosed: Acquire attempted on a closed pool
//   - types.ErrInvalidPoolSize: Pool requested with a non-positive size
//
// Use errors.Is to test for them.
//
// # Customization
//
// The initializer accepts functional options: WithConnector swaps the
// backing driver, WithLogger and WithMetrics attach observability
// collaborators, and WithSchema replaces the bootstrap DDL. Defaults are a
// pgx-backed connector, a no-op logger and a no-op metrics collector.
package iroha
