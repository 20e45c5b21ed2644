// Package belief tracks what one side knows about the hidden ranks of the
// opposing army and turns that knowledge into fully observable states.
package belief

import (
	"math"

	"stratego/game"

	"gonum.org/v1/gonum/floats"
)

// Weights tunes the soft evidence applied by ObserveMove.
type Weights struct {
	// StationaryBias multiplies the Flag and Bomb weight of pieces that have never moved.
	StationaryBias float64
	// MobilityBias multiplies the Scout weight once per observed move, up to maxMobilityMoves.
	MobilityBias float64
}

const maxMobilityMoves = 5

func DefaultWeights() Weights {
	return Weights{StationaryBias: 3.0, MobilityBias: 1.25}
}

type evidence struct {
	known    game.Rank // NoRank while hidden
	revealed bool
	moved    bool
	moves    int
	alive    bool
}

// Tracker maintains, for one side, a distribution over the rank of every
// hidden enemy piece. Pieces are keyed by identity and addressed by position.
//
// A Tracker is not safe for concurrent mutation. Searches only read it.
type Tracker struct {
	side    game.Side
	weights Weights
	army    [game.NumRanks]int
	dead    [game.NumRanks]int
	pieces  map[game.PieceID]*evidence
	at      map[game.Position]game.PieceID
}

// NewTracker starts tracking the enemy pieces of state from side's point of
// view. Only public information is read: positions, moved and revealed flags,
// and the ranks of revealed pieces.
func NewTracker(side game.Side, state *game.GameState, weights Weights) *Tracker {
	t := &Tracker{
		side:    side,
		weights: weights,
		army:    game.StandardArmy,
		pieces:  make(map[game.PieceID]*evidence),
		at:      make(map[game.Position]game.PieceID),
	}
	for _, p := range state.Pieces(side.Opponent()) {
		ev := &evidence{moved: p.Moved, alive: true}
		if p.Revealed {
			ev.known = p.Rank
			ev.revealed = true
		}
		t.pieces[p.ID] = ev
		t.at[p.Pos] = p.ID
	}
	return t
}

// Side is the side whose beliefs are tracked.
func (t *Tracker) Side() game.Side {
	return t.side
}

// ObserveReveal records that the enemy piece on pos has rank. The
// distribution collapses to a point mass and stays there.
func (t *Tracker) ObserveReveal(pos game.Position, rank game.Rank) {
	ev := t.evidenceAt(pos)
	if ev == nil {
		return
	}
	ev.known = rank
	ev.revealed = true
}

// ObserveMove records that the enemy piece on pos moved distance squares. A
// move longer than one square can only be made by a Scout.
func (t *Tracker) ObserveMove(pos game.Position, distance int) {
	ev := t.evidenceAt(pos)
	if ev == nil {
		return
	}
	ev.moved = true
	ev.moves++
	if distance > 1 && ev.known == game.NoRank {
		ev.known = game.Scout
	}
}

// Relocate follows an enemy piece from one square to another.
func (t *Tracker) Relocate(from, to game.Position) {
	id, ok := t.at[from]
	if !ok {
		return
	}
	delete(t.at, from)
	t.at[to] = id
}

// Remove records that the enemy piece on pos was captured.
func (t *Tracker) Remove(pos game.Position) {
	id, ok := t.at[pos]
	if !ok {
		return
	}
	ev := t.pieces[id]
	ev.alive = false
	if ev.known != game.NoRank {
		t.dead[ev.known]++
	}
	delete(t.at, pos)
}

// Observe applies the public consequences of move m, which produced after.
func (t *Tracker) Observe(m game.Move, after *game.GameState) {
	combat, fought := after.LastCombat()
	if m.Side != t.side {
		if fought {
			t.ObserveReveal(m.From, combat.Attacker.Rank)
		}
		t.ObserveMove(m.From, m.Distance())
		if fought && combat.Outcome != game.AttackerWins {
			t.Remove(m.From)
			return
		}
		t.Relocate(m.From, m.To)
		return
	}
	if fought {
		t.ObserveReveal(m.To, combat.Defender.Rank)
		if combat.Outcome != game.DefenderWins {
			t.Remove(m.To)
		}
	}
}

// DistributionFor returns the probability of each rank for the enemy piece on
// pos. Ranks with zero probability are omitted. It returns nil when no
// tracked enemy piece stands on pos.
func (t *Tracker) DistributionFor(pos game.Position) map[game.Rank]float64 {
	ev := t.evidenceAt(pos)
	if ev == nil {
		return nil
	}
	w := t.distribution(ev, t.pool())
	dist := make(map[game.Rank]float64)
	for _, rank := range game.Ranks {
		if w[rank] > 0 {
			dist[rank] = w[rank]
		}
	}
	return dist
}

// Known returns the rank of the enemy piece id when it is certain.
func (t *Tracker) Known(id game.PieceID) (game.Rank, bool) {
	ev, ok := t.pieces[id]
	if !ok || ev.known == game.NoRank {
		return game.NoRank, false
	}
	return ev.known, true
}

func (t *Tracker) evidenceAt(pos game.Position) *evidence {
	id, ok := t.at[pos]
	if !ok {
		return nil
	}
	return t.pieces[id]
}

// pool counts the ranks still unaccounted for among hidden enemy pieces.
func (t *Tracker) pool() [game.NumRanks]int {
	pool := t.army
	for rank := range pool {
		pool[rank] -= t.dead[rank]
	}
	for _, ev := range t.pieces {
		if ev.alive && ev.known != game.NoRank {
			pool[ev.known]--
		}
	}
	for rank := range pool {
		if pool[rank] < 0 {
			pool[rank] = 0
		}
	}
	return pool
}

// distribution returns normalized rank probabilities for ev given the pool.
func (t *Tracker) distribution(ev *evidence, pool [game.NumRanks]int) []float64 {
	w := make([]float64, game.NumRanks)
	if ev.known != game.NoRank {
		w[ev.known] = 1
		return w
	}
	t.weigh(w, ev, pool)
	sum := floats.Sum(w)
	if sum == 0 {
		// Evidence contradicts the pool: fall back to every rank the piece could have
		for _, rank := range game.Ranks {
			if rank.Mobile() || !ev.moved {
				w[rank] = 1
			}
		}
		sum = floats.Sum(w)
	}
	floats.Scale(1/sum, w)
	return w
}

// weigh fills w with unnormalized weights for a hidden piece.
func (t *Tracker) weigh(w []float64, ev *evidence, pool [game.NumRanks]int) {
	scout := math.Pow(t.weights.MobilityBias, float64(min(ev.moves, maxMobilityMoves)))
	for _, rank := range game.Ranks {
		weight := float64(pool[rank])
		switch {
		case !rank.Mobile() && ev.moved:
			weight = 0
		case !rank.Mobile():
			weight *= t.weights.StationaryBias
		case rank == game.Scout:
			weight *= scout
		}
		w[rank] = weight
	}
}
