package game

import "fmt"

// Side identifies one of the two armies. Red moves first.
type Side uint8

const (
	Red Side = iota
	Blue
)

func (s Side) Opponent() Side {
	if s == Red {
		return Blue
	}
	return Red
}

func (s Side) String() string {
	if s == Red {
		return "Red"
	}
	return "Blue"
}

// Rank is a piece's combat tier. The zero value marks an empty square.
type Rank uint8

const (
	NoRank Rank = iota
	Flag
	Bomb
	Spy
	Scout
	Miner
	Sergeant
	Lieutenant
	Captain
	Major
	Colonel
	General
	Marshal
)

// Ranks lists every real rank in ascending order.
var Ranks = []Rank{Flag, Bomb, Spy, Scout, Miner, Sergeant, Lieutenant, Captain, Major, Colonel, General, Marshal}

// NumRanks sizes per-rank arrays indexed by Rank.
const NumRanks = int(Marshal) + 1

var rankNames = [NumRanks]string{"-", "Flag", "Bomb", "Spy", "Scout", "Miner", "Sergeant", "Lieutenant", "Captain", "Major", "Colonel", "General", "Marshal"}

func (r Rank) String() string {
	if int(r) < NumRanks {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", r)
}

// Strength is the number compared in ordinary combat. Flag is 0, Spy 1,
// Marshal 10. Bomb never takes part in an ordinary comparison.
func (r Rank) Strength() int {
	switch r {
	case Flag, NoRank:
		return 0
	case Bomb:
		return 11
	default:
		return int(r) - int(Bomb)
	}
}

// Mobile reports whether pieces of this rank may ever move.
func (r Rank) Mobile() bool {
	return r != Flag && r != Bomb && r != NoRank
}

// PieceID is a persistent identity that survives moves and reveals.
type PieceID uint8

// Piece is an immutable value. Moving or revealing a piece produces a new value.
type Piece struct {
	ID       PieceID
	Rank     Rank
	Side     Side
	Revealed bool
	Moved    bool
	Pos      Position
}

func (p Piece) IsEmpty() bool {
	return p.Rank == NoRank
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s#%d@%s", p.Side, p.Rank, p.ID, p.Pos)
}

func (p Piece) reveal() Piece {
	p.Revealed = true
	return p
}

func (p Piece) movedTo(pos Position) Piece {
	p.Pos = pos
	p.Moved = true
	return p
}
