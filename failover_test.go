package iroha_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	iroha "github.com/ecsantana76/iroha"
	"github.com/ecsantana76/iroha/driver"
	"github.com/ecsantana76/iroha/internal/metrics"
	"github.com/ecsantana76/iroha/policy"
	"github.com/ecsantana76/iroha/test/testutil"
	"github.com/ecsantana76/iroha/types"
)

func TestFailoverCallbackInvoke(t *testing.T) {
	cause := errors.New("server closed the connection unexpectedly")

	t.Run("restores on first successful reconnect", func(t *testing.T) {
		session := testutil.NewMockSession()
		restored := 0
		restore := func(_ context.Context, _ driver.Session) { restored++ }

		holder := iroha.NewFailoverCallbackHolder()
		callback := holder.MakeFailoverCallback(session, restore, policy.NewKTimes(3),
			testutil.NewRecordingLogger(), metrics.NewNopMetrics())

		require.NoError(t, callback.Invoke(cause))
		require.Equal(t, 1, session.Reconnects())
		require.Equal(t, 1, restored)
	})

	t.Run("retries within the budget", func(t *testing.T) {
		session := testutil.NewMockSession()
		attempts := 0
		session.OnReconnect = func() error {
			attempts++
			if attempts < 3 {
				return errors.New("still unreachable")
			}

			return nil
		}

		holder := iroha.NewFailoverCallbackHolder()
		callback := holder.MakeFailoverCallback(session, func(context.Context, driver.Session) {},
			policy.NewKTimes(5), testutil.NewRecordingLogger(), metrics.NewNopMetrics())

		require.NoError(t, callback.Invoke(cause))
		require.Equal(t, 3, session.Reconnects())
	})

	t.Run("surfaces exhaustion after the budget", func(t *testing.T) {
		session := testutil.NewMockSession()
		session.OnReconnect = func() error {
			return errors.New("still unreachable")
		}
		restored := 0

		holder := iroha.NewFailoverCallbackHolder()
		callback := holder.MakeFailoverCallback(session,
			func(context.Context, driver.Session) { restored++ },
			policy.NewKTimes(2), testutil.NewRecordingLogger(), metrics.NewNopMetrics())

		err := callback.Invoke(cause)
		require.ErrorIs(t, err, types.ErrReconnectionExhausted)
		require.Equal(t, 2, session.Reconnects())
		require.Zero(t, restored)

		// The budget stays exhausted for later invocations.
		err = callback.Invoke(cause)
		require.ErrorIs(t, err, types.ErrReconnectionExhausted)
		require.Equal(t, 2, session.Reconnects())
	})

	t.Run("sanitizes the cause in the exhaustion error", func(t *testing.T) {
		session := testutil.NewMockSession()

		holder := iroha.NewFailoverCallbackHolder()
		callback := holder.MakeFailoverCallback(session, func(context.Context, driver.Session) {},
			policy.NewKTimes(0), testutil.NewRecordingLogger(), metrics.NewNopMetrics())

		err := callback.Invoke(errors.New("FATAL: terminating connection\r\ndue to administrator command"))
		require.Error(t, err)
		require.NotContains(t, err.Error(), "\n")
		require.Contains(t, err.Error(), "terminating connection due to administrator command")
	})
}

func TestFailoverCallbackHolder(t *testing.T) {
	t.Run("owns one callback per session", func(t *testing.T) {
		holder := iroha.NewFailoverCallbackHolder()
		require.Zero(t, holder.Size())

		for i := 0; i < 4; i++ {
			holder.MakeFailoverCallback(testutil.NewMockSession(),
				func(context.Context, driver.Session) {},
				policy.NewKTimes(1), testutil.NewRecordingLogger(), metrics.NewNopMetrics())
		}
		require.Equal(t, 4, holder.Size())
	})

	t.Run("callbacks keep independent budgets", func(t *testing.T) {
		holder := iroha.NewFailoverCallbackHolder()
		broken := testutil.NewMockSession()
		broken.OnReconnect = func() error { return errors.New("unreachable") }
		healthy := testutil.NewMockSession()

		brokenCb := holder.MakeFailoverCallback(broken, func(context.Context, driver.Session) {},
			policy.NewKTimes(1), testutil.NewRecordingLogger(), metrics.NewNopMetrics())
		healthyCb := holder.MakeFailoverCallback(healthy, func(context.Context, driver.Session) {},
			policy.NewKTimes(1), testutil.NewRecordingLogger(), metrics.NewNopMetrics())

		require.Error(t, brokenCb.Invoke(errors.New("gone")))

		// Exhausting one session's budget leaves the other's intact.
		require.NoError(t, healthyCb.Invoke(errors.New("gone")))
		require.Equal(t, 1, healthy.Reconnects())
	})
}
