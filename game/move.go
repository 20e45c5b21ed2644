package game

import "fmt"

// Move represents a move in the game. A generated Move is legal for the state
// it was generated from; apply it to a later state and it is validated again.
type Move struct {
	From Position
	To   Position
	Side Side
}

// Distance is the number of squares travelled along the move's line.
func (m Move) Distance() int {
	return abs(m.To.Row-m.From.Row) + abs(m.To.Col-m.From.Col)
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s-%s", m.Side, m.From, m.To)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
