package game

// RankValues is the material worth of each rank. The flag is priceless and
// handled by terminal detection instead.
var RankValues = [NumRanks]int{
	Flag:       0,
	Bomb:       75,
	Spy:        100,
	Scout:      30,
	Miner:      100,
	Sergeant:   25,
	Lieutenant: 50,
	Captain:    100,
	Major:      140,
	Colonel:    175,
	General:    300,
	Marshal:    400,
}

const (
	mobilityWeight = 2
	secrecyWeight  = 5
)

// EvaluateMaterial tallies piece values for side minus the opponent's.
func EvaluateMaterial(gs *GameState, side Side) int {
	return gs.materialScore(side)
}

// EvaluateMobility considers how many destinations each side can reach, in
// addition to material.
func EvaluateMobility(gs *GameState, side Side) int {
	return gs.materialScore(side) + gs.mobilityScore(side)
}

// EvaluateSecrecy also rewards keeping pieces unrevealed, on top of material
// and mobility.
func EvaluateSecrecy(gs *GameState, side Side) int {
	return gs.materialScore(side) + gs.mobilityScore(side) + gs.secrecyScore(side)
}

func (gs *GameState) materialScore(side Side) int {
	score := 0
	for _, p := range gs.board.squares {
		if p.IsEmpty() {
			continue
		}
		if p.Side == side {
			score += RankValues[p.Rank]
		} else {
			score -= RankValues[p.Rank]
		}
	}
	return score
}

func (gs *GameState) mobilityScore(side Side) int {
	return mobilityWeight * (gs.board.mobility(side) - gs.board.mobility(side.Opponent()))
}

func (gs *GameState) secrecyScore(side Side) int {
	score := 0
	for _, p := range gs.board.squares {
		if p.IsEmpty() || p.Revealed {
			continue
		}
		if p.Side == side {
			score += secrecyWeight
		} else {
			score -= secrecyWeight
		}
	}
	return score
}
