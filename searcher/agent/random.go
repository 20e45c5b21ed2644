package agent

import (
	"context"

	"stratego/experiments/metrics"
	"stratego/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}, &game.NoLegalMoveError{Side: state.ToMove()}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Strategy: "random"}, nil
}

func (a *randomAgent) Observe(move game.Move, after *game.GameState) {}
