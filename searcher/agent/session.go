package agent

import (
	"context"
	"fmt"
	"time"

	"stratego/belief"
	"stratego/experiments/metrics"
	"stratego/game"
	"stratego/searcher"
)

// Session is one side's AI for the length of a game. It owns the side's
// beliefs about the enemy army and keeps them current from observed moves.
type Session struct {
	side     game.Side
	tracker  *belief.Tracker
	searcher searcher.Searcher
	budget   time.Duration
}

// NewSession starts a session for side from the initial state of a game.
func NewSession(side game.Side, state *game.GameState, s searcher.Searcher, weights belief.Weights, budget time.Duration) *Session {
	return &Session{
		side:     side,
		tracker:  belief.NewTracker(side, state, weights),
		searcher: s,
		budget:   budget,
	}
}

func (s *Session) Side() game.Side {
	return s.side
}

// Tracker exposes the session's beliefs. Callers must not modify it while a
// search is running.
func (s *Session) Tracker() *belief.Tracker {
	return s.tracker
}

// ChooseMove searches state for side within budget using the session's beliefs.
func (s *Session) ChooseMove(ctx context.Context, state *game.GameState, side game.Side, budget time.Duration) (game.Move, error) {
	if side != s.side {
		return game.Move{}, &game.IllegalStateError{Op: "choose move", Reason: fmt.Sprintf("session plays %s, not %s", s.side, side)}
	}
	return s.searcher.ChooseMove(ctx, state, side, s.tracker, budget)
}

// Observe feeds a played move into the session's beliefs.
func (s *Session) Observe(move game.Move, after *game.GameState) {
	s.tracker.Observe(move, after)
}

func (s *Session) FindMove(ctx context.Context, state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	move, err := s.ChooseMove(ctx, state, state.ToMove(), s.budget)
	var metric metrics.SearchMetric
	if reporter, ok := s.searcher.(searcher.MetricReporter); ok {
		metric = reporter.LastMetric()
	}
	return move, metric, err
}
