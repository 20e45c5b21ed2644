package searcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"stratego/game"

	"github.com/stretchr/testify/require"
)

func moves(n int) []game.Move {
	ms := make([]game.Move, n)
	for i := range ms {
		ms[i] = game.Move{From: game.Position{Row: 0, Col: i}, To: game.Position{Row: 1, Col: i}, Side: game.Red}
	}
	return ms
}

func TestNodeSelectOrExpand(t *testing.T) {
	t.Run("expanding in generation order", func(t *testing.T) {
		root := newNode(nil, game.Move{}, game.Blue)
		ms := moves(3)

		for i, want := range ms {
			child, expanded := root.selectOrExpand(ms, game.Red)

			require.True(t, expanded)
			require.Equal(t, want, child.move)
			require.Equal(t, game.Red, child.mover)
			require.Len(t, root.children, i+1)
			require.Equal(t, 1, child.visits, "A virtual loss counts as a visit")
			require.Equal(t, Loss, child.rewards)
		}
	})

	t.Run("selecting the max UCB child once fully expanded", func(t *testing.T) {
		root := newNode(nil, game.Move{}, game.Blue)
		ms := moves(2)
		for range ms {
			child, _ := root.selectOrExpand(ms, game.Red)
			backup(child, 0)
		}
		root.children[1].rewards = 5
		root.children[1].visits = 6

		child, expanded := root.selectOrExpand(ms, game.Red)

		require.False(t, expanded)
		require.Equal(t, ms[1], child.move)
	})

	t.Run("counting availability of legal children only", func(t *testing.T) {
		root := newNode(nil, game.Move{}, game.Blue)
		ms := moves(3)
		for range ms {
			child, _ := root.selectOrExpand(ms, game.Red)
			backup(child, 0)
		}

		root.selectOrExpand(ms[:2], game.Red)

		require.Equal(t, 2, root.children[0].avails)
		require.Equal(t, 2, root.children[1].avails)
		require.Equal(t, 1, root.children[2].avails, "An unavailable move is not counted")
	})
}

func TestNodeBackup(t *testing.T) {
	root := newNode(nil, game.Move{}, game.Blue)
	red, _ := root.selectOrExpand(moves(1), game.Red)
	blue, _ := red.selectOrExpand(moves(1), game.Blue)

	backup(blue, Win)

	require.Equal(t, 1, blue.visits, "Virtual loss is reversed")
	require.Equal(t, Loss, blue.rewards, "Blue is credited from its own perspective")
	require.Equal(t, 1, red.visits)
	require.Equal(t, Win, red.rewards)
	require.Equal(t, 1, root.visits)
}

func TestNodeConcurrentEpisodes(t *testing.T) {
	root := newNode(nil, game.Move{}, game.Blue)
	ms := moves(4)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				child, _ := root.selectOrExpand(ms, game.Red)
				backup(child, 0)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 800, root.Visits())
	total := 0
	for _, child := range root.children {
		total += child.Visits()
	}
	require.Equal(t, 800, total, "Every virtual loss should have been reversed")
	require.Len(t, root.children, 4)
}

func TestISMCTSCollectsMetrics(t *testing.T) {
	s := NewISMCTS(WithGoroutines(2), WithMetrics(), WithCutoff(10))

	_, err := s.ChooseMove(context.Background(), melee(t), game.Red, nil, 50*time.Millisecond)

	require.NoError(t, err)
	metric := s.LastMetric()
	require.Equal(t, StrategyISMCTS, metric.Strategy)
	require.GreaterOrEqual(t, metric.Episodes, 2, "Each worker runs at least one episode")
	require.Positive(t, metric.Nodes)
}

func TestNew(t *testing.T) {
	s, err := New(StrategyMinimax)
	require.NoError(t, err)
	require.IsType(t, &Minimax{}, s)

	s, err = New(StrategyISMCTS, WithSeed(3))
	require.NoError(t, err)
	require.IsType(t, &ISMCTS{}, s)

	_, err = New("alphazero")
	require.Error(t, err)
}
