package iroha

import (
	"context"
	"strconv"

	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/internal/logging"
	"github.com/ecsantana76/iroha/result"
	"github.com/ecsantana76/iroha/types"
)

// ConnectionPoolInitializer orchestrates pool creation, capability probing,
// one-time schema bootstrap and per-session failover wiring for the
// relational storage backend of a ledger node.
//
// Construction is fully sequential: sessions are opened and initialized
// strictly in ascending index order on a single goroutine, because schema
// bootstrap on session 0 must complete before any other session is touched,
// and it must run exactly once per pool.
type ConnectionPoolInitializer struct {
	config *Config
}

// NewConnectionPoolInitializer creates an initializer.
//
// Parameters:
//   - opts: Optional configuration (connector, logger, metrics, schema)
//
// Returns:
//   - *ConnectionPoolInitializer: The initializer
func NewConnectionPoolInitializer(opts ...Option) *ConnectionPoolInitializer {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &ConnectionPoolInitializer{config: config}
}

// CreatePool opens size sessions against the target, strictly in order and
// eagerly. The operation is all-or-nothing: any single session failing to
// open closes the sessions opened so far and yields an error holding a
// sanitized diagnostic; no partial pool is ever returned.
//
// Parameters:
//   - ctx: Context for connection establishment
//   - options: Connection options string, passed through to the driver
//   - size: Number of sessions to open; must be positive
//
// Returns:
//   - result.Result[*ConnectionPool, string]: The complete pool, or a
//     single-line diagnostic
func (i *ConnectionPoolInitializer) CreatePool(ctx context.Context, options string, size int) result.Result[*ConnectionPool, string] {
	if size <= 0 {
		return result.Err[*ConnectionPool, string](types.ErrInvalidPoolSize.Error())
	}

	sessions := make([]driver.Session, 0, size)
	for idx := 0; idx < size; idx++ {
		session, err := i.config.Connector.Open(ctx, options)
		if err != nil {
			i.config.Metrics.IncSessionOpenError()
			for _, opened := range sessions {
				_ = opened.Close(ctx)
			}

			return result.Err[*ConnectionPool, string](types.FormatDiagnostic(err.Error()))
		}

		i.config.Metrics.IncSessionOpened()
		sessions = append(sessions, session)
	}

	return result.Ok[*ConnectionPool, string](newConnectionPool(sessions))
}

// PrepareConnectionPool is the top-level orchestration: it derives the
// connection options string, creates the pool, probes prepared-transaction
// support, rolls back any dangling prepared block from a previous crash,
// bootstraps the schema on session 0 and wires failover on every session.
//
// Ordering is deliberate: bootstrap completes on session 0 before any
// session is exposed for general use, and it runs exactly once regardless of
// pool size.
//
// Parameters:
//   - ctx: Context for connection establishment and initialization
//   - factory: Produces one fresh reconnection strategy per session
//   - options: Parsed connection options
//   - size: Pool size; must be positive
//
// Returns:
//   - result.Result[*PoolWrapper, string]: The immutable pool wrapper, or a
//     single-line diagnostic
func (i *ConnectionPoolInitializer) PrepareConnectionPool(
	ctx context.Context,
	factory ReconnectionStrategyFactory,
	options *PostgresOptions,
	size int,
) result.Result[*PoolWrapper, string] {
	optionsStr := options.OptionsString()

	return result.Bind(i.CreatePool(ctx, optionsStr, size), func(pool *ConnectionPool) result.Result[*PoolWrapper, string] {
		supportsPrepared := i.PreparedTransactionsAvailable(ctx, pool.At(0))
		preparedBlockName := options.PreparedBlockName()

		// Best effort: a dangling prepared transaction left by a previous
		// crash must not block startup.
		tryRollback := func(ctx context.Context, session driver.Session) {
			if !supportsPrepared {
				return
			}
			i.RollbackPrepared(ctx, session, preparedBlockName).Match(
				func(result.Unit) {},
				func(diag string) {
					i.config.Logger.Warn("rollback on creation has failed", "error", diag)
				},
			)
		}

		holder := NewFailoverCallbackHolder()

		if err := i.initializeConnectionPool(ctx, pool, factory, holder, tryRollback); err != nil {
			_ = pool.Close(ctx)

			return result.Err[*PoolWrapper, string](types.FormatDiagnostic(err.Error()))
		}

		i.config.Metrics.SetPoolSize(size)

		return result.Ok[*PoolWrapper, string](NewPoolWrapper(pool, holder, supportsPrepared))
	})
}

// PreparedTransactionsAvailable probes the backend for two-phase commit
// support by reading the max_prepared_transactions server setting. A
// non-zero value means prepared transactions are available. Any probe
// failure degrades to "unsupported" rather than aborting.
//
// Parameters:
//   - ctx: Context for the probe query
//   - session: The session to probe through
//
// Returns:
//   - bool: true when the backend accepts prepared transactions
func (i *ConnectionPoolInitializer) PreparedTransactionsAvailable(ctx context.Context, session driver.Session) bool {
	count, err := session.QueryInt(ctx, "SHOW max_prepared_transactions;")
	if err != nil {
		return false
	}

	return count != 0
}

// RollbackPrepared rolls back the prepared transaction with the given
// identifier.
//
// Parameters:
//   - ctx: Context for the statement
//   - session: The session to issue the rollback through
//   - preparedBlockName: The prepared transaction identifier
//
// Returns:
//   - result.Result[result.Unit, string]: Empty value on success, or a
//     single-line diagnostic
func (i *ConnectionPoolInitializer) RollbackPrepared(ctx context.Context, session driver.Session, preparedBlockName string) result.Result[result.Unit, string] {
	if err := session.Exec(ctx, "ROLLBACK PREPARED '"+preparedBlockName+"';"); err != nil {
		return result.Err[result.Unit, string](types.FormatDiagnostic(err.Error()))
	}

	return result.Ok[result.Unit, string](result.Unit{})
}

// CreateDatabaseIfNotExist connects without selecting a database, checks the
// system catalog for the target database and creates it when absent.
//
// The existence check and the creation are not atomic against concurrent
// creators; a single operator is assumed to initialize a node's database.
//
// Parameters:
//   - ctx: Context for the maintenance connection
//   - dbname: The database to check for and create
//   - optionsWithoutDBName: Connection options with the dbname token stripped
//
// Returns:
//   - result.Result[bool, string]: true when a database was created, false
//     when it already existed, or a single-line diagnostic; connectivity
//     failures are prefixed to distinguish "cannot reach backend" from a
//     plain query failure
func (i *ConnectionPoolInitializer) CreateDatabaseIfNotExist(ctx context.Context, dbname string, optionsWithoutDBName string) result.Result[bool, string] {
	session, err := i.config.Connector.Open(ctx, optionsWithoutDBName)
	if err != nil {
		return result.Err[bool, string]("Connection to PostgreSQL broken: " + types.FormatDiagnostic(err.Error()))
	}
	defer func() { _ = session.Close(ctx) }()

	count, err := session.QueryInt(ctx,
		"SELECT count(datname) FROM pg_catalog.pg_database WHERE datname = $1", dbname)
	if err != nil {
		return result.Err[bool, string](types.FormatDiagnostic(err.Error()))
	}

	if count != 0 {
		return result.Ok[bool, string](false)
	}

	if err := session.Exec(ctx, "CREATE DATABASE "+dbname); err != nil {
		return result.Err[bool, string](types.FormatDiagnostic(err.Error()))
	}

	return result.Ok[bool, string](true)
}

// initializeConnectionPool runs the per-session initialization in ascending
// index order: session 0 through the bootstrap procedure, the rest through
// the plain one. The connection index used to name per-session loggers is
// threaded explicitly through the calls.
func (i *ConnectionPoolInitializer) initializeConnectionPool(
	ctx context.Context,
	pool *ConnectionPool,
	factory ReconnectionStrategyFactory,
	holder *FailoverCallbackHolder,
	tryRollback func(context.Context, driver.Session),
) error {
	connectionIndex := 0

	if err := i.initBootstrapSession(ctx, pool.At(0), factory, holder, tryRollback, &connectionIndex); err != nil {
		return err
	}

	for idx := 1; idx < pool.Size(); idx++ {
		i.initPlainSession(pool.At(idx), factory, holder, &connectionIndex)
	}

	return nil
}

// initBootstrapSession initializes session 0: hooks, the best-effort
// prepared-transaction rollback, then the one-time schema bootstrap. A
// bootstrap failure aborts the whole pool preparation.
func (i *ConnectionPoolInitializer) initBootstrapSession(
	ctx context.Context,
	session driver.Session,
	factory ReconnectionStrategyFactory,
	holder *FailoverCallbackHolder,
	tryRollback func(context.Context, driver.Session),
	connectionIndex *int,
) error {
	i.initPlainSession(session, factory, holder, connectionIndex)

	tryRollback(ctx, session)

	if err := session.Exec(ctx, i.config.Schema); err != nil {
		return err
	}
	i.config.Metrics.IncBootstrapTotal()

	return nil
}

// initPlainSession attaches the notice-log hook and the failover hook; no
// bootstrap, no rollback. Every session in the pool goes through this.
func (i *ConnectionPoolInitializer) initPlainSession(
	session driver.Session,
	factory ReconnectionStrategyFactory,
	holder *FailoverCallbackHolder,
	connectionIndex *int,
) {
	sessionLogger := logging.WithName(i.config.Logger, "connection "+strconv.Itoa(*connectionIndex))
	*connectionIndex++

	session.SetNoticeHandler(i.noticeHandler(sessionLogger))

	restore := func(_ context.Context, s driver.Session) {
		s.SetNoticeHandler(i.noticeHandler(sessionLogger))
	}

	callback := holder.MakeFailoverCallback(session, restore, factory.Create(), sessionLogger, i.config.Metrics)
	session.SetFailureHook(callback.Invoke)
}

// noticeHandler adapts a session logger to the driver's notice hook. Every
// message is sanitized before it reaches the logging collaborator.
func (i *ConnectionPoolInitializer) noticeHandler(logger types.Logger) driver.NoticeHandler {
	return func(message string) {
		i.config.Metrics.IncNoticeTotal()
		logger.Debug(types.FormatDiagnostic(message))
	}
}
