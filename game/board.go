package game

import (
	"fmt"
	"sort"
)

const (
	BoardSize  = 10
	NumSquares = BoardSize * BoardSize
)

// Position is a square on the 10x10 grid. Row 0 is Red's back rank.
type Position struct {
	Row int
	Col int
}

func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

func (p Position) index() int {
	return p.Row*BoardSize + p.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

func positionAt(index int) Position {
	return Position{Row: index / BoardSize, Col: index % BoardSize}
}

// Lakes are the two 2x2 impassable blocks in the middle of the board.
var Lakes = [8]Position{
	{4, 2}, {4, 3}, {5, 2}, {5, 3},
	{4, 6}, {4, 7}, {5, 6}, {5, 7},
}

var lakeMask = func() (mask [NumSquares]bool) {
	for _, pos := range Lakes {
		mask[pos.index()] = true
	}
	return mask
}()

// IsLake reports whether pos is one of the eight lake squares.
func IsLake(pos Position) bool {
	return pos.Valid() && lakeMask[pos.index()]
}

var directions = [4]Position{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

// Board maps squares to pieces. It is a value type: assigning a Board copies it.
type Board struct {
	squares [NumSquares]Piece
}

// NewBoard places pieces at their Pos, rejecting off-board, lake and shared
// squares. Ranks and sides must be known and every ID distinct.
func NewBoard(pieces ...Piece) (Board, error) {
	var b Board
	var seen [256]bool
	for _, p := range pieces {
		if p.IsEmpty() {
			return Board{}, fmt.Errorf("cannot place piece %d: no rank", p.ID)
		}
		if int(p.Rank) >= NumRanks {
			return Board{}, fmt.Errorf("cannot place piece %d: unknown %s", p.ID, p.Rank)
		}
		if p.Side > Blue {
			return Board{}, fmt.Errorf("cannot place piece %d: unknown side %d", p.ID, p.Side)
		}
		if seen[p.ID] {
			return Board{}, fmt.Errorf("cannot place %s: duplicate id", p)
		}
		seen[p.ID] = true
		if !p.Pos.Valid() {
			return Board{}, fmt.Errorf("cannot place %s: off the board", p)
		}
		if IsLake(p.Pos) {
			return Board{}, fmt.Errorf("cannot place %s: lake square", p)
		}
		if !b.squares[p.Pos.index()].IsEmpty() {
			return Board{}, fmt.Errorf("cannot place %s: square already occupied", p)
		}
		b.squares[p.Pos.index()] = p
	}
	return b, nil
}

func (b *Board) IsLake(pos Position) bool {
	return IsLake(pos)
}

// PieceAt returns the piece on pos, if any.
func (b *Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.Valid() {
		return Piece{}, false
	}
	p := b.squares[pos.index()]
	return p, !p.IsEmpty()
}

// Pieces returns every piece of side in row-major order.
func (b *Board) Pieces(side Side) []Piece {
	pieces := make([]Piece, 0, 40)
	for _, p := range b.squares {
		if !p.IsEmpty() && p.Side == side {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// LegalDestinations returns the squares the piece on pos may move to or
// attack, in row-major order. Flags, Bombs and empty squares have none.
func (b *Board) LegalDestinations(pos Position) []Position {
	piece, ok := b.PieceAt(pos)
	if !ok || !piece.Rank.Mobile() {
		return nil
	}
	var dests []Position
	for _, dir := range directions {
		to := Position{Row: pos.Row + dir.Row, Col: pos.Col + dir.Col}
		for to.Valid() && !IsLake(to) {
			other := b.squares[to.index()]
			if !other.IsEmpty() {
				if other.Side != piece.Side {
					dests = append(dests, to)
				}
				break
			}
			dests = append(dests, to)
			if piece.Rank != Scout {
				break
			}
			to = Position{Row: to.Row + dir.Row, Col: to.Col + dir.Col}
		}
	}
	if piece.Rank == Scout {
		sort.Slice(dests, func(i, j int) bool {
			return dests[i].index() < dests[j].index()
		})
	}
	return dests
}

func (b *Board) canReach(from, to Position) bool {
	for _, dest := range b.LegalDestinations(from) {
		if dest == to {
			return true
		}
	}
	return false
}

// mobility counts destinations available to side, ignoring history rules.
func (b *Board) mobility(side Side) int {
	count := 0
	for i, p := range b.squares {
		if !p.IsEmpty() && p.Side == side && p.Rank.Mobile() {
			count += len(b.LegalDestinations(positionAt(i)))
		}
	}
	return count
}

func (b *Board) set(pos Position, p Piece) {
	b.squares[pos.index()] = p
}

func (b *Board) clear(pos Position) {
	b.squares[pos.index()] = Piece{}
}
