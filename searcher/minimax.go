package searcher

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"stratego/belief"
	"stratego/experiments/metrics"
	"stratego/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// infinity bounds the alpha-beta window. It exceeds every terminal score.
const infinity = math.MaxInt32

// Assumed ratio between the cost of successive depths before two have been
// timed.
const defaultBranching = 4

var errDeadline = errors.New("search deadline exceeded")

// Minimax searches a single determinization of the state with iterative
// deepening alpha-beta. Root moves are shared out between goroutines.
//
// ChooseMove must not be called concurrently on the same Minimax.
type Minimax struct {
	settings
	last metrics.SearchMetric
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{settings: newSettings(options)}
}

func (m *Minimax) LastMetric() metrics.SearchMetric {
	return m.last
}

// rootResult is the outcome of one completed depth.
type rootResult struct {
	move      game.Move
	score     int
	truncated bool // Some line was cut off by the depth limit
}

func (m *Minimax) ChooseMove(ctx context.Context, state *game.GameState, side game.Side, beliefs *belief.Tracker, budget time.Duration) (game.Move, error) {
	moves, err := prepare(state, side, beliefs)
	if err != nil {
		return game.Move{}, err
	}

	m.metrics.Start(StrategyMinimax, m.goroutines, budget)
	defer func() { m.last = m.metrics.Complete() }()

	if len(moves) == 1 {
		return moves[0], nil
	}

	root := state
	if beliefs != nil {
		root = belief.Determinize(state, beliefs)
	}

	start := time.Now()
	deadline := start.Add(budget)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	best := moves[0]
	var previous time.Duration
	for depth := 1; depth <= m.maxDepth; depth++ {
		began := time.Now()
		result, err := m.searchRoot(ctx, root, moves, depth)
		if err != nil {
			log.Debug().Int("depth", depth).Dur("elapsed", time.Since(start)).Msg("search aborted")
			break
		}
		elapsed := time.Since(began)
		best = result.move
		m.metrics.SetDepth(depth)
		log.Debug().
			Int("depth", depth).
			Int("score", result.score).
			Str("move", result.move.String()).
			Dur("elapsed", time.Since(start)).
			Msg("depth complete")

		if !result.truncated {
			break
		}
		branching := time.Duration(defaultBranching)
		if previous > 0 && elapsed > previous {
			branching = elapsed/previous + 1
		}
		if time.Now().Add(elapsed * branching).After(deadline) {
			break
		}
		previous = elapsed
	}
	return best, nil
}

// searchRoot runs one depth of alpha-beta over the root moves. Workers share
// the best score found so far as their lower bound. Each child is searched
// with a window one below that bound so a child tying the best gets an exact
// score, and the reduction keeps the earliest of equal moves.
func (m *Minimax) searchRoot(ctx context.Context, root *game.GameState, moves []game.Move, depth int) (rootResult, error) {
	var alpha atomic.Int64
	alpha.Store(-infinity)
	var truncated atomic.Bool
	scores := make([]int, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.goroutines)
	for i, move := range moves {
		i, move := i, move
		g.Go(func() error {
			w := &worker{
				ctx:       ctx,
				evaluate:  m.evaluate,
				nodeCheck: m.nodeCheck,
				abortable: depth > 1,
			}
			defer func() { m.metrics.AddNodes(w.nodes) }()

			bound := int(alpha.Load())
			score, err := w.alphabeta(mustApply(root, move), depth-1, -infinity, -(bound - 1), 1)
			if err != nil {
				return err
			}
			score = -score
			scores[i] = score
			if w.truncated {
				truncated.Store(true)
			}
			for {
				current := alpha.Load()
				if int64(score) <= current || alpha.CompareAndSwap(current, int64(score)) {
					break
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rootResult{}, err
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return rootResult{move: moves[best], score: scores[best], truncated: truncated.Load()}, nil
}

// worker holds the per-goroutine state of a sequential alpha-beta search.
type worker struct {
	ctx       context.Context
	evaluate  game.Evaluate
	nodeCheck int
	abortable bool
	nodes     int
	truncated bool
}

// alphabeta returns the negamax score of state from the side to move's
// perspective.
func (w *worker) alphabeta(state *game.GameState, depth, alpha, beta, ply int) (int, error) {
	w.nodes++
	if w.abortable && w.nodes%w.nodeCheck == 0 && w.ctx.Err() != nil {
		return 0, errDeadline
	}

	if state.Terminal() {
		return terminalScore(state, ply), nil
	}
	if depth == 0 {
		w.truncated = true
		return w.evaluate(state, state.ToMove()), nil
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return -(game.WinScore - ply), nil
	}
	orderMoves(state, moves)

	best := -infinity
	for _, move := range moves {
		score, err := w.alphabeta(mustApply(state, move), depth-1, -beta, -alpha, ply+1)
		if err != nil {
			return 0, err
		}
		score = -score
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// terminalScore prefers faster wins and slower losses. Draws score zero.
func terminalScore(state *game.GameState, ply int) int {
	winner, won := state.Winner()
	if !won {
		return 0
	}
	if winner == state.ToMove() {
		return game.WinScore - ply
	}
	return -(game.WinScore - ply)
}

// orderMoves puts attacks first, keeping generation order otherwise.
func orderMoves(state *game.GameState, moves []game.Move) {
	next := 0
	for i, m := range moves {
		if _, occupied := state.PieceAt(m.To); occupied {
			captures := moves[i]
			copy(moves[next+1:i+1], moves[next:i])
			moves[next] = captures
			next++
		}
	}
}
