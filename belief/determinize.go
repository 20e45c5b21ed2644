package belief

import (
	"stratego/game"
)

// tieOrder breaks ties between equally likely ranks, earliest first.
var tieOrder = []game.Rank{
	game.Bomb, game.Marshal, game.General, game.Colonel, game.Major, game.Captain,
	game.Lieutenant, game.Sergeant, game.Miner, game.Scout, game.Spy, game.Flag,
}

// Determinize replaces the rank of every hidden enemy piece in state with its
// most likely rank under tracker. Revealed pieces and the tracking side's own
// pieces are left alone. The result is a fresh state; neither argument is
// modified, and equal inputs always give equal outputs.
func Determinize(state *game.GameState, tracker *Tracker) *game.GameState {
	ranks := make(map[game.PieceID]game.Rank)
	pool := tracker.pool()
	for _, p := range state.Pieces(tracker.side.Opponent()) {
		if p.Revealed {
			continue
		}
		ranks[p.ID] = mostLikely(tracker.distribution(tracker.evidenceFor(p), pool))
	}
	return state.WithRanks(ranks)
}

// MostLikely returns the most probable rank of the enemy piece on pos.
func (t *Tracker) MostLikely(pos game.Position) (game.Rank, bool) {
	ev := t.evidenceAt(pos)
	if ev == nil {
		return game.NoRank, false
	}
	return mostLikely(t.distribution(ev, t.pool())), true
}

func mostLikely(w []float64) game.Rank {
	best := tieOrder[0]
	for _, rank := range tieOrder[1:] {
		if w[rank] > w[best] {
			best = rank
		}
	}
	return best
}

// evidenceFor returns the evidence on piece p, or what its public flags
// imply when the tracker has never seen it.
func (t *Tracker) evidenceFor(p game.Piece) *evidence {
	if ev, ok := t.pieces[p.ID]; ok {
		return ev
	}
	ev := &evidence{moved: p.Moved, alive: true}
	if p.Revealed {
		ev.known = p.Rank
	}
	return ev
}
