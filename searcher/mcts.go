package searcher

import (
	"context"
	"time"

	"stratego/belief"
	"stratego/experiments/metrics"
	"stratego/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// ISMCTS is single-observer information-set Monte Carlo tree search. Every
// episode samples a fresh determinization of the hidden enemy ranks and
// walks one shared tree, so statistics are pooled across determinizations.
//
// ChooseMove must not be called concurrently on the same ISMCTS.
type ISMCTS struct {
	settings
	last metrics.SearchMetric
}

func NewISMCTS(options ...Option) *ISMCTS {
	return &ISMCTS{settings: newSettings(options)}
}

func (m *ISMCTS) LastMetric() metrics.SearchMetric {
	return m.last
}

func (m *ISMCTS) ChooseMove(ctx context.Context, state *game.GameState, side game.Side, beliefs *belief.Tracker, budget time.Duration) (game.Move, error) {
	moves, err := prepare(state, side, beliefs)
	if err != nil {
		return game.Move{}, err
	}

	m.metrics.Start(StrategyISMCTS, m.goroutines, budget)
	defer func() { m.last = m.metrics.Complete() }()

	if len(moves) == 1 {
		return moves[0], nil
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	root := newNode(nil, game.Move{}, side.Opponent())
	var g errgroup.Group
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(m.seed + uint64(i)))
		g.Go(func() error {
			// Every worker completes at least one episode
			for episodes := 0; episodes == 0 || ctx.Err() == nil; episodes++ {
				m.simulate(root, state, beliefs, rng)
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	_ = g.Wait()

	best, ok := root.bestMove(moves)
	if !ok {
		log.Warn().Msg("no root move was visited")
		return moves[0], nil
	}
	log.Debug().Int("visits", root.Visits()).Str("move", best.String()).Msg("search complete")
	return best, nil
}

func (m *ISMCTS) simulate(root *node, state *game.GameState, beliefs *belief.Tracker, rng *rand.Rand) {
	if beliefs != nil {
		state = belief.Sample(state, beliefs, rng)
	}
	leaf, state := m.selectThenExpand(root, state)
	reward := m.rollout(state, rng)
	backup(leaf, reward)
}

func (m *ISMCTS) selectThenExpand(root *node, state *game.GameState) (*node, *game.GameState) {
	n := root
	for !state.Terminal() {
		child, expanded := n.selectOrExpand(state.LegalMoves(), state.ToMove())
		state = mustApply(state, child.move)
		n = child
		if expanded {
			m.metrics.AddNodes(1)
			break
		}
	}
	return n, state
}

// rollout plays random moves until the game ends or the cutoff is reached and
// returns the reward from Red's perspective.
func (m *ISMCTS) rollout(state *game.GameState, rng *rand.Rand) float64 {
	// Rollout till game over or for cutoff number of moves
	for depth := 0; !state.Terminal() && depth < m.cutoff; depth++ {
		moves := state.LegalMoves()
		state = mustApply(state, moves[rng.Intn(len(moves))]) // Random rollout policy
	}

	if state.Terminal() { // Game over before cutoff
		m.metrics.AddFullPlayout()
		winner, won := state.Winner()
		switch {
		case !won:
			return 0
		case winner == game.Red:
			return Win
		default:
			return Loss
		}
	}

	// At cutoff state, return an evaluation score from Red's perspective
	return squash(m.evaluate(state, game.Red))
}

func backup(leaf *node, reward float64) {
	n := leaf
	for n != nil {
		n = n.backup(reward)
	}
}
