package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// ArmySize is the number of pieces each side deploys.
const ArmySize = 40

// StandardArmy counts the pieces of each rank in a full army.
var StandardArmy = [NumRanks]int{
	Flag:       1,
	Bomb:       6,
	Spy:        1,
	Scout:      8,
	Miner:      5,
	Sergeant:   4,
	Lieutenant: 4,
	Captain:    4,
	Major:      3,
	Colonel:    2,
	General:    1,
	Marshal:    1,
}

// Setup lists the ranks of one army in board row-major order over its four
// home rows: rows 0-3 for Red, rows 6-9 for Blue.
type Setup [ArmySize]Rank

// Validate checks the setup deploys exactly the standard army.
func (s Setup) Validate() error {
	var counts [NumRanks]int
	for i, rank := range s {
		if rank == NoRank || int(rank) >= NumRanks {
			return fmt.Errorf("setup slot %d: invalid rank %d", i, rank)
		}
		counts[rank]++
	}
	for _, rank := range Ranks {
		if counts[rank] != StandardArmy[rank] {
			return fmt.Errorf("setup has %d %s, want %d", counts[rank], rank, StandardArmy[rank])
		}
	}
	return nil
}

// RandomSetup shuffles the standard army into the home rows.
func RandomSetup(rng *rand.Rand) Setup {
	var s Setup
	i := 0
	for _, rank := range Ranks {
		for n := 0; n < StandardArmy[rank]; n++ {
			s[i] = rank
			i++
		}
	}
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return s
}

func homeRow(side Side) int {
	if side == Red {
		return 0
	}
	return BoardSize - 4
}

func (s Setup) pieces(side Side) []Piece {
	pieces := make([]Piece, 0, ArmySize)
	firstID := PieceID(1)
	if side == Blue {
		firstID = ArmySize + 1
	}
	for i, rank := range s {
		pieces = append(pieces, Piece{
			ID:   firstID + PieceID(i),
			Rank: rank,
			Side: side,
			Pos:  Position{Row: homeRow(side) + i/BoardSize, Col: i % BoardSize},
		})
	}
	return pieces
}

// NewGame deploys both armies, all pieces hidden, with Red to move.
func NewGame(red, blue Setup, options ...RuleOption) (*GameState, error) {
	if err := red.Validate(); err != nil {
		return nil, fmt.Errorf("red setup: %w", err)
	}
	if err := blue.Validate(); err != nil {
		return nil, fmt.Errorf("blue setup: %w", err)
	}
	board, err := NewBoard(append(red.pieces(Red), blue.pieces(Blue)...)...)
	if err != nil {
		return nil, err
	}
	return NewGameState(board, Red, options...), nil
}
