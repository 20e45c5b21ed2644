package engine

import (
	"context"
	"time"

	"stratego/experiments/metrics"
	"stratego/game"
	"stratego/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local plays two in-process agents against each other.
type Local struct {
	state    *game.GameState
	agents   [2]agent.Agent // Indexed by game.Side
	maxMoves int
}

func NewLocal(state *game.GameState, red, blue agent.Agent, maxMoves int) *Local {
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &Local{
		state:    state,
		agents:   [2]agent.Agent{red, blue},
		maxMoves: maxMoves,
	}
}

// Run executes the entire game loop until the game ends.
func (e *Local) Run(ctx context.Context) (Result, error) {
	state := e.state
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", state.ToMove())

	for step := 1; !state.Terminal() && step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		side := state.ToMove()

		move, searchMetric, err := e.agents[side].FindMove(ctx, state)
		next, applyErr := state.ApplyMove(move)
		if err != nil || applyErr != nil {
			if err == nil {
				err = applyErr
			}
			// The game must go on: replace the agent's move with the first legal one
			log.Warn().Err(err).Msgf("%s returned an unusable move %s at step %d", side, move, step)
			move = state.LegalMoves()[0]
			next, err = state.ApplyMove(move)
			if err != nil {
				return Result{}, err
			}
			gameMetric.Fallbacks++
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		for _, a := range e.agents {
			a.Observe(move, next)
		}
		state = next
	}

	status := state.Status()
	if !status.Terminal() {
		status = game.Status{Outcome: game.Drawn, Reason: game.MoveLimit}
		log.Info().Msgf("stopped after %d moves without a result", e.maxMoves)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = state.HalfMoves()
	gameMetric.Reason = status.Reason.String()
	if status.Outcome == game.Won {
		gameMetric.Winner = status.Winner.String()
	}
	log.Info().Msgf("game over after %d moves: %s", gameMetric.TotalMoves, status)

	return Result{Final: state, Status: status, Game: gameMetric, Moves: moveMetrics}, nil
}
