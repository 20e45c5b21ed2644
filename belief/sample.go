package belief

import (
	"stratego/game"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Sample draws a complete assignment of ranks for the hidden enemy pieces of
// state. Ranks are drawn without replacement from the unaccounted army, each
// piece weighted by its evidence, so the assignment is consistent with the
// army composition whenever the evidence allows it.
func Sample(state *game.GameState, tracker *Tracker, rng *rand.Rand) *game.GameState {
	var hidden []game.Piece
	for _, p := range state.Pieces(tracker.side.Opponent()) {
		if !p.Revealed {
			hidden = append(hidden, p)
		}
	}
	rng.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})

	pool := tracker.pool()
	ranks := make(map[game.PieceID]game.Rank, len(hidden))
	w := make([]float64, game.NumRanks)
	for _, p := range hidden {
		ev := tracker.evidenceFor(p)
		if ev.known != game.NoRank {
			ranks[p.ID] = ev.known
			continue
		}
		tracker.weigh(w, ev, pool)
		rank := draw(w, rng)
		if rank == game.NoRank {
			// Pool exhausted for this piece: take the unconstrained guess
			rank = mostLikely(tracker.distribution(ev, pool))
		} else {
			pool[rank]--
		}
		ranks[p.ID] = rank
	}
	return state.WithRanks(ranks)
}

// draw picks a rank with probability proportional to w. It returns NoRank
// when every weight is zero.
func draw(w []float64, rng *rand.Rand) game.Rank {
	total := floats.Sum(w)
	if total <= 0 {
		return game.NoRank
	}
	u := rng.Float64() * total
	for _, rank := range game.Ranks {
		if w[rank] == 0 {
			continue
		}
		u -= w[rank]
		if u < 0 {
			return rank
		}
	}
	for i := len(game.Ranks) - 1; i >= 0; i-- {
		if w[game.Ranks[i]] > 0 {
			return game.Ranks[i]
		}
	}
	return game.NoRank
}
