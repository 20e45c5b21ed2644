package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func piece(id PieceID, rank Rank, side Side, row, col int) Piece {
	return Piece{ID: id, Rank: rank, Side: side, Pos: Position{Row: row, Col: col}}
}

func mustBoard(t *testing.T, pieces ...Piece) Board {
	t.Helper()
	b, err := NewBoard(pieces...)
	require.NoError(t, err)
	return b
}

func TestLakes(t *testing.T) {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if IsLake(Position{row, col}) {
				count++
			}
		}
	}
	require.Equal(t, 8, count, "There should be exactly eight lake squares")
	require.True(t, IsLake(Position{4, 2}))
	require.True(t, IsLake(Position{5, 7}))
	require.False(t, IsLake(Position{4, 4}))
	require.False(t, IsLake(Position{-1, 2}), "Off-board squares are not lakes")
}

func TestNewBoard(t *testing.T) {
	t.Run("rejecting a lake placement", func(t *testing.T) {
		_, err := NewBoard(piece(1, Scout, Red, 4, 2))
		require.Error(t, err)
	})

	t.Run("rejecting two pieces on one square", func(t *testing.T) {
		_, err := NewBoard(piece(1, Scout, Red, 0, 0), piece(2, Miner, Red, 0, 0))
		require.Error(t, err)
	})

	t.Run("rejecting an off-board placement", func(t *testing.T) {
		_, err := NewBoard(piece(1, Scout, Red, 10, 0))
		require.Error(t, err)
	})

	t.Run("rejecting a shared id", func(t *testing.T) {
		_, err := NewBoard(piece(0, Scout, Red, 0, 0), piece(0, Miner, Red, 0, 1))
		require.Error(t, err)
	})

	t.Run("rejecting an unknown rank", func(t *testing.T) {
		_, err := NewBoard(piece(1, Rank(13), Red, 0, 0))
		require.Error(t, err)
	})

	t.Run("rejecting an unknown side", func(t *testing.T) {
		_, err := NewBoard(piece(1, Scout, Side(2), 0, 0))
		require.Error(t, err)
	})

	t.Run("placing pieces", func(t *testing.T) {
		b := mustBoard(t, piece(1, Scout, Red, 0, 0), piece(41, Flag, Blue, 9, 9))

		got, ok := b.PieceAt(Position{0, 0})
		require.True(t, ok)
		require.Equal(t, Scout, got.Rank)
		_, ok = b.PieceAt(Position{5, 5})
		require.False(t, ok, "Empty squares hold no piece")
		require.Len(t, b.Pieces(Blue), 1)
	})
}

func TestLegalDestinations(t *testing.T) {
	t.Run("moving one square orthogonally", func(t *testing.T) {
		b := mustBoard(t, piece(1, Sergeant, Red, 2, 2))

		got := b.LegalDestinations(Position{2, 2})

		require.Equal(t, []Position{{1, 2}, {2, 1}, {2, 3}, {3, 2}}, got)
	})

	t.Run("blocking by own pieces and lakes", func(t *testing.T) {
		b := mustBoard(t,
			piece(1, Captain, Red, 3, 2),
			piece(2, Bomb, Red, 2, 2),
			piece(41, Miner, Blue, 3, 3),
		)

		got := b.LegalDestinations(Position{3, 2})

		require.Equal(t, []Position{{3, 1}, {3, 3}}, got, "Own piece and lake block, enemy can be attacked")
	})

	t.Run("immobile ranks", func(t *testing.T) {
		b := mustBoard(t, piece(1, Bomb, Red, 0, 0), piece(2, Flag, Red, 0, 1))

		require.Empty(t, b.LegalDestinations(Position{0, 0}))
		require.Empty(t, b.LegalDestinations(Position{0, 1}))
		require.Empty(t, b.LegalDestinations(Position{5, 5}), "Empty square has no destinations")
	})

	t.Run("scout sliding to the edge", func(t *testing.T) {
		b := mustBoard(t, piece(1, Scout, Red, 0, 0))

		got := b.LegalDestinations(Position{0, 0})

		require.Len(t, got, 18)
		require.Contains(t, got, Position{0, 9})
		require.Contains(t, got, Position{9, 0})
		for i := 1; i < len(got); i++ {
			require.Less(t, got[i-1].index(), got[i].index(), "Destinations should be row-major")
		}
	})

	t.Run("scout stopping before own piece and on enemy piece", func(t *testing.T) {
		b := mustBoard(t,
			piece(1, Scout, Red, 0, 0),
			piece(2, Miner, Red, 0, 4),
			piece(41, Marshal, Blue, 3, 0),
			piece(42, Sergeant, Blue, 6, 0),
		)

		got := b.LegalDestinations(Position{0, 0})

		require.Equal(t, []Position{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {2, 0}, {3, 0}}, got)
		require.NotContains(t, got, Position{6, 0}, "Scout cannot pass the first obstruction")
	})

	t.Run("scout stopping at a lake", func(t *testing.T) {
		b := mustBoard(t, piece(1, Scout, Red, 4, 0))

		got := b.LegalDestinations(Position{4, 0})

		require.Contains(t, got, Position{4, 1})
		require.NotContains(t, got, Position{4, 2}, "Lakes are never destinations")
		require.NotContains(t, got, Position{4, 4}, "Scout cannot jump a lake")
	})
}
