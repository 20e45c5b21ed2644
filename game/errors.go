package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrIllegalState = errors.New("illegal state")
	ErrNoLegalMove  = errors.New("no legal move")
)

// InvalidMoveError rejects a malformed or illegal move. The caller should
// discard the intent or ask again.
type InvalidMoveError struct {
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %s: %s", e.Move, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}

// IllegalStateError rejects an operation on a state that cannot take it,
// such as applying a move after the game has ended.
type IllegalStateError struct {
	Op     string
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *IllegalStateError) Unwrap() error {
	return ErrIllegalState
}

// NoLegalMoveError means a move was requested for a side that cannot move.
// The caller should have noticed the terminal state first.
type NoLegalMoveError struct {
	Side Side
}

func (e *NoLegalMoveError) Error() string {
	return fmt.Sprintf("no legal move for %s", e.Side)
}

func (e *NoLegalMoveError) Unwrap() error {
	return ErrNoLegalMove
}
