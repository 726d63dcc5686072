package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKTimesGrantsExactlyKAttempts(t *testing.T) {
	strategy := NewKTimes(3)

	require.True(t, strategy.CanReconnect())
	require.True(t, strategy.CanReconnect())
	require.True(t, strategy.CanReconnect())

	// The (K+1)-th query is refused, permanently.
	require.False(t, strategy.CanReconnect())
	require.False(t, strategy.CanReconnect())
	require.Equal(t, 0, strategy.Remaining())
}

func TestKTimesZeroNeverReconnects(t *testing.T) {
	strategy := NewKTimes(0)

	require.False(t, strategy.CanReconnect())
	require.False(t, strategy.CanReconnect())
}

func TestFactoryProducesIndependentStrategies(t *testing.T) {
	factory := NewKTimesFactory(2)

	a := factory.Create()
	b := factory.Create()

	// Exhaust A's budget.
	require.True(t, a.CanReconnect())
	require.True(t, a.CanReconnect())
	require.False(t, a.CanReconnect())

	// B's budget is unaffected.
	require.True(t, b.CanReconnect())
	require.True(t, b.CanReconnect())
	require.False(t, b.CanReconnect())
}

func TestKTimesConcurrentBudget(t *testing.T) {
	const k = 100
	strategy := NewKTimes(k)

	granted := make(chan bool, 4*k)
	done := make(chan struct{})

	for w := 0; w < 4; w++ {
		go func() {
			for i := 0; i < k; i++ {
				granted <- strategy.CanReconnect()
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < 4; w++ {
		<-done
	}
	close(granted)

	var total int
	for g := range granted {
		if g {
			total++
		}
	}
	require.Equal(t, k, total)
}
