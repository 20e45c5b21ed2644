package searcher

import (
	"context"
	"fmt"
	"time"

	"stratego/belief"
	"stratego/experiments/metrics"
	"stratego/game"
)

// Searcher picks a move for side within a time budget. Hidden enemy ranks are
// guessed from beliefs; a nil tracker searches the state as given.
type Searcher interface {
	ChooseMove(ctx context.Context, state *game.GameState, side game.Side, beliefs *belief.Tracker, budget time.Duration) (game.Move, error)
}

// MetricReporter is implemented by searchers that collect search metrics.
type MetricReporter interface {
	LastMetric() metrics.SearchMetric
}

const (
	StrategyMinimax = "minimax"
	StrategyISMCTS  = "ismcts"
)

// New returns the searcher implementing strategy.
func New(strategy string, options ...Option) (Searcher, error) {
	switch strategy {
	case StrategyMinimax:
		return NewMinimax(options...), nil
	case StrategyISMCTS:
		return NewISMCTS(options...), nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", strategy)
	}
}

const (
	DefaultGoroutines = 4
	DefaultMaxDepth   = 64
	DefaultNodeCheck  = 1024
	DefaultCutoff     = 40
)

type settings struct {
	goroutines int
	maxDepth   int
	nodeCheck  int
	cutoff     int
	seed       uint64
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

type Option func(s *settings)

func WithGoroutines(goroutines int) Option {
	return func(s *settings) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

// WithMaxDepth caps iterative deepening.
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithNodeCheck sets how many nodes a worker visits between deadline checks.
func WithNodeCheck(nodes int) Option {
	return func(s *settings) {
		if nodes > 0 {
			s.nodeCheck = nodes
		}
	}
}

// WithCutoff limits the number of moves of an ISMCTS rollout.
func WithCutoff(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.cutoff = depth
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *settings) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		goroutines: DefaultGoroutines,
		maxDepth:   DefaultMaxDepth,
		nodeCheck:  DefaultNodeCheck,
		cutoff:     DefaultCutoff,
		seed:       1,
		evaluate:   game.EvaluateMobility,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// prepare validates a search request and returns the root moves.
func prepare(state *game.GameState, side game.Side, beliefs *belief.Tracker) ([]game.Move, error) {
	if state.ToMove() != side {
		return nil, &game.IllegalStateError{Op: "choose move", Reason: fmt.Sprintf("%s is not to move", side)}
	}
	if beliefs != nil && beliefs.Side() != side {
		return nil, &game.IllegalStateError{Op: "choose move", Reason: fmt.Sprintf("beliefs are held by %s", beliefs.Side())}
	}
	if status := state.Status(); status.Terminal() {
		if status.Reason == game.NoMoves {
			return nil, &game.NoLegalMoveError{Side: side}
		}
		return nil, &game.IllegalStateError{Op: "choose move", Reason: "game is over: " + status.String()}
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, &game.NoLegalMoveError{Side: side}
	}
	return moves, nil
}

// mustApply plays a move generated by LegalMoves.
func mustApply(state *game.GameState, m game.Move) *game.GameState {
	next, err := state.ApplyMove(m)
	if err != nil {
		panic(fmt.Sprintf("generated move %s rejected: %v", m, err))
	}
	return next
}
