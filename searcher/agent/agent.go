package agent

import (
	"context"

	"stratego/experiments/metrics"
	"stratego/game"
)

type Agent interface {
	// FindMove returns a move for the side to move and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state *game.GameState) (game.Move, metrics.SearchMetric, error)
	// Observe is called with every move played, by either side, and the state it produced
	Observe(move game.Move, after *game.GameState)
}
