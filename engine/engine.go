package engine

import (
	"context"

	"stratego/experiments/metrics"
	"stratego/game"
)

const MaxMoves = 600

// Result summarises a finished game.
type Result struct {
	Final *game.GameState
	// Status of the final state, or a move-limit draw if the engine stopped the game
	Status game.Status
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

type Engine interface {
	// Run plays a game till it ends or a max number of moves is reached
	Run(ctx context.Context) (Result, error)
}
