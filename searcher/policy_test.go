package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB(t *testing.T) {
	t.Run("unvisited child is explored first", func(t *testing.T) {
		require.Equal(t, math.Inf(1), ucb(0, 0, 10))
	})

	t.Run("computing UCB value", func(t *testing.T) {
		got := ucb(5.0, 10, 100)

		expected := 5.0/10 + math.Sqrt(CSquared*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + sqrt(c^2*ln(availability)/n)")
	})

	t.Run("exploration term increases with availability", func(t *testing.T) {
		require.Greater(t, ucb(5, 10, 1000), ucb(5, 10, 100),
			"More availability should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, ucb(5, 10, 100), ucb(10, 20, 100),
			"More child visits at the same mean should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		require.Greater(t, ucb(10, 10, 100), ucb(5, 10, 100),
			"More rewards should increase exploitation term")
	})
}

func TestSquash(t *testing.T) {
	require.Equal(t, 0.0, squash(0))
	require.InDelta(t, -squash(250), squash(-250), 1e-12)
	require.Less(t, squash(1_000_000), Win+1e-12)
	require.Greater(t, squash(-1_000_000), Loss-1e-12)
}

