package game

import "golang.org/x/exp/rand"

// StateHash identifies a position: piece ranks and owners per square plus the
// side to move. Revealed and moved flags are not part of it.
type StateHash uint64

const zobristSeed = 0x5157a7e90

var (
	zobristPieces [NumSquares][2][NumRanks]uint64
	zobristBlue   uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for sq := range zobristPieces {
		for side := range zobristPieces[sq] {
			for rank := range zobristPieces[sq][side] {
				zobristPieces[sq][side][rank] = rng.Uint64()
			}
		}
	}
	zobristBlue = rng.Uint64()
}

func pieceKey(p Piece) uint64 {
	return zobristPieces[p.Pos.index()][p.Side][p.Rank]
}

func hashBoard(b *Board, toMove Side) StateHash {
	var h uint64
	for _, p := range b.squares {
		if !p.IsEmpty() {
			h ^= pieceKey(p)
		}
	}
	if toMove == Blue {
		h ^= zobristBlue
	}
	return StateHash(h)
}
