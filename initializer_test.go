package iroha_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	iroha "github.com/ecsantana76/iroha"
	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/policy"
	"github.com/ecsantana76/iroha/result"
	"github.com/ecsantana76/iroha/test/testutil"
	"github.com/ecsantana76/iroha/types"
)

// mustValue unwraps a value-holding Result or fails the test.
func mustValue[V any](t *testing.T, r result.Result[V, string]) V {
	t.Helper()

	value, ok := r.ToValue()
	if !ok {
		diag, _ := r.ToError()
		t.Fatalf("expected value, got error: %s", diag)
	}

	return value
}

// mustError unwraps an error-holding Result or fails the test.
func mustError[V any](t *testing.T, r result.Result[V, string]) string {
	t.Helper()

	diag, ok := r.ToError()
	require.True(t, ok, "expected error, got value")

	return diag
}

// newPreparedConnector returns a connector whose sessions report prepared
// transactions as available, plus the list of sessions it produced.
func newPreparedConnector() (*testutil.MockConnector, *[]*testutil.MockSession) {
	connector := testutil.NewMockConnector()
	sessions := &[]*testutil.MockSession{}

	connector.OnOpen = func(_ string) (driver.Session, error) {
		session := testutil.NewMockSession()
		session.OnQueryInt = func(_ string, _ ...any) (int, error) {
			return 100, nil
		}
		*sessions = append(*sessions, session)

		return session, nil
	}

	return connector, sessions
}

func parseOptions(t *testing.T, options string) *iroha.PostgresOptions {
	t.Helper()

	parsed, err := iroha.ParsePostgresOptions(options, iroha.DefaultDatabaseName, testutil.NewRecordingLogger())
	require.NoError(t, err)

	return parsed
}

func TestCreatePool(t *testing.T) {
	ctx := context.Background()

	t.Run("opens exactly size sessions", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		pool := mustValue(t, init.CreatePool(ctx, "host=localhost dbname=wsv", 4))
		require.Equal(t, 4, pool.Size())
		require.Len(t, connector.OpenedOptions(), 4)
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		for _, size := range []int{0, -1} {
			res := init.CreatePool(ctx, "dbname=wsv", size)
			require.True(t, res.HasError())
		}
		require.Empty(t, connector.OpenedOptions())
	})

	t.Run("all or nothing on open failure", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		connector.FailAt = 2
		connector.OpenErr = errors.New("FATAL: too many connections\r\nfor role \"iroha\"")
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		diag := mustError(t, init.CreatePool(ctx, "dbname=wsv", 4))

		// The two sessions opened before the failure are closed again.
		opened := connector.Sessions()
		require.Len(t, opened, 2)
		for _, session := range opened {
			require.True(t, session.Closed())
		}

		// Diagnostics are single-line.
		require.NotContains(t, diag, "\n")
		require.Contains(t, diag, "too many connections")
	})
}

func TestPrepareConnectionPool(t *testing.T) {
	ctx := context.Background()
	options := "host=localhost port=5432 user=iroha password=secret dbname=wsv"

	t.Run("bootstraps schema exactly once", func(t *testing.T) {
		for _, size := range []int{1, 10} {
			connector, sessions := newPreparedConnector()
			init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

			wrapper := mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), size))
			require.Equal(t, size, wrapper.Pool().Size())
			require.True(t, wrapper.SupportsPreparedTransactions())

			// Session 0 ran the rollback and the schema DDL.
			first := (*sessions)[0].ExecCalls()
			require.Len(t, first, 2)
			require.Equal(t, "ROLLBACK PREPARED 'prepared_blockwsv';", first[0].SQL)
			require.Contains(t, first[1].SQL, "CREATE TABLE IF NOT EXISTS role")

			// Every other session executed nothing at all.
			for _, session := range (*sessions)[1:] {
				require.Empty(t, session.ExecCalls())
			}
		}
	})

	t.Run("every session gets hooks", func(t *testing.T) {
		connector, sessions := newPreparedConnector()
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), 5))

		for _, session := range *sessions {
			require.NotNil(t, session.NoticeHandler())
			// A restorable failure is absorbed by the failover hook.
			require.NoError(t, session.TriggerFailure(errors.New("connection reset")))
			require.Equal(t, 1, session.Reconnects())
		}
	})

	t.Run("probe failure degrades to unsupported", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(_ string, _ ...any) (int, error) {
				return 0, errors.New("probe failed")
			}

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		wrapper := mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), 2))
		require.False(t, wrapper.SupportsPreparedTransactions())
	})

	t.Run("skips rollback when prepared transactions unsupported", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		var first *testutil.MockSession
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			if first == nil {
				first = session
			}

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		wrapper := mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), 2))
		require.False(t, wrapper.SupportsPreparedTransactions())

		calls := first.ExecCalls()
		require.Len(t, calls, 1)
		require.NotContains(t, calls[0].SQL, "ROLLBACK PREPARED")
	})

	t.Run("rollback failure is non-fatal", func(t *testing.T) {
		logger := testutil.NewRecordingLogger()
		connector := testutil.NewMockConnector()
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(_ string, _ ...any) (int, error) {
				return 100, nil
			}
			session.OnExec = func(sql string, _ ...any) error {
				if strings.HasPrefix(sql, "ROLLBACK PREPARED") {
					return errors.New(`prepared transaction "prepared_blockwsv" does not exist`)
				}

				return nil
			}

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(
			iroha.WithConnector(connector),
			iroha.WithLogger(logger),
		)

		mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), 2))
		require.True(t, logger.HasMessage("warn", "rollback on creation has failed"))
	})

	t.Run("bootstrap failure closes the pool", func(t *testing.T) {
		var sessions []*testutil.MockSession
		connector := testutil.NewMockConnector()
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(_ string, _ ...any) (int, error) {
				return 100, nil
			}
			session.OnExec = func(sql string, _ ...any) error {
				if strings.Contains(sql, "CREATE TABLE") {
					return errors.New("ERROR: permission denied for schema public")
				}

				return nil
			}
			sessions = append(sessions, session)

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		diag := mustError(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3), parseOptions(t, options), 3))
		require.Contains(t, diag, "permission denied")

		for _, session := range sessions {
			require.True(t, session.Closed())
		}
	})
}

func TestPreparedTransactionsAvailable(t *testing.T) {
	ctx := context.Background()
	init := iroha.NewConnectionPoolInitializer()

	tests := []struct {
		name  string
		value int
		err   error
		want  bool
	}{
		{name: "non-zero setting means supported", value: 100, want: true},
		{name: "zero setting means unsupported", value: 0, want: false},
		{name: "probe error means unsupported", err: errors.New("broken"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(sql string, _ ...any) (int, error) {
				require.Equal(t, "SHOW max_prepared_transactions;", sql)

				return tt.value, tt.err
			}

			require.Equal(t, tt.want, init.PreparedTransactionsAvailable(ctx, session))
		})
	}
}

func TestRollbackPrepared(t *testing.T) {
	ctx := context.Background()
	init := iroha.NewConnectionPoolInitializer()

	t.Run("issues the rollback statement", func(t *testing.T) {
		session := testutil.NewMockSession()

		res := init.RollbackPrepared(ctx, session, types.PreparedBlockName("wsv"))
		require.True(t, res.HasValue())

		calls := session.ExecCalls()
		require.Len(t, calls, 1)
		require.Equal(t, "ROLLBACK PREPARED 'prepared_blockwsv';", calls[0].SQL)
	})

	t.Run("sanitizes the failure diagnostic", func(t *testing.T) {
		session := testutil.NewMockSession()
		session.OnExec = func(_ string, _ ...any) error {
			return errors.New("ERROR: prepared transaction\r\ndoes not exist")
		}

		diag := mustError(t, init.RollbackPrepared(ctx, session, "prepared_blockwsv"))
		require.Equal(t, "ERROR: prepared transaction does not exist", diag)
	})
}

func TestCreateDatabaseIfNotExist(t *testing.T) {
	ctx := context.Background()
	maintenance := "host=localhost port=5432 user=iroha password=secret"

	t.Run("creates a missing database", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		created := mustValue(t, init.CreateDatabaseIfNotExist(ctx, "wsv", maintenance))
		require.True(t, created)

		session := connector.Sessions()[0]
		calls := session.ExecCalls()
		require.Len(t, calls, 1)
		require.Equal(t, "CREATE DATABASE wsv", calls[0].SQL)
		require.True(t, session.Closed())
	})

	t.Run("leaves an existing database alone", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(_ string, args ...any) (int, error) {
				require.Equal(t, []any{"wsv"}, args)

				return 1, nil
			}

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		created := mustValue(t, init.CreateDatabaseIfNotExist(ctx, "wsv", maintenance))
		require.False(t, created)
	})

	t.Run("flags connectivity failure distinctly", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		connector.FailAt = 0
		connector.OpenErr = errors.New("dial tcp: connection refused")
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		diag := mustError(t, init.CreateDatabaseIfNotExist(ctx, "wsv", maintenance))
		require.True(t, strings.HasPrefix(diag, "Connection to PostgreSQL broken: "))
	})

	t.Run("reports query failure without the connectivity prefix", func(t *testing.T) {
		connector := testutil.NewMockConnector()
		connector.OnOpen = func(_ string) (driver.Session, error) {
			session := testutil.NewMockSession()
			session.OnQueryInt = func(_ string, _ ...any) (int, error) {
				return 0, errors.New("ERROR: permission denied")
			}

			return session, nil
		}
		init := iroha.NewConnectionPoolInitializer(iroha.WithConnector(connector))

		diag := mustError(t, init.CreateDatabaseIfNotExist(ctx, "wsv", maintenance))
		require.Equal(t, "ERROR: permission denied", diag)
	})
}

func TestNoticeHandlerLogsSanitizedMessages(t *testing.T) {
	ctx := context.Background()
	logger := testutil.NewRecordingLogger()
	connector, sessions := newPreparedConnector()
	init := iroha.NewConnectionPoolInitializer(
		iroha.WithConnector(connector),
		iroha.WithLogger(logger),
	)

	mustValue(t, init.PrepareConnectionPool(ctx, policy.NewKTimesFactory(3),
		parseOptions(t, "host=localhost dbname=wsv"), 1))

	(*sessions)[0].EmitNotice("NOTICE: relation \"role\"\r\nalready exists")
	require.True(t, logger.HasMessage("debug", "NOTICE: relation \"role\" already exists"))
}
