package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestStandardArmy(t *testing.T) {
	total := 0
	for _, n := range StandardArmy {
		total += n
	}
	require.Equal(t, ArmySize, total)
}

func TestSetupValidate(t *testing.T) {
	s := RandomSetup(rand.New(rand.NewSource(7)))
	require.NoError(t, s.Validate())

	for i, rank := range s {
		if rank == Sergeant {
			s[i] = Marshal
			break
		}
	}
	require.Error(t, s.Validate(), "Two marshals should be rejected")
}

func TestNewGame(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	gs, err := NewGame(RandomSetup(rng), RandomSetup(rng))

	require.NoError(t, err)
	require.Equal(t, Red, gs.ToMove())
	require.False(t, gs.Terminal())
	require.Len(t, gs.Pieces(Red), ArmySize)
	require.Len(t, gs.Pieces(Blue), ArmySize)
	for _, p := range gs.Pieces(Red) {
		require.Less(t, p.Pos.Row, 4, "Red deploys on rows 0-3")
		require.False(t, p.Revealed)
		require.LessOrEqual(t, p.ID, PieceID(ArmySize))
	}
	for _, p := range gs.Pieces(Blue) {
		require.GreaterOrEqual(t, p.Pos.Row, 6, "Blue deploys on rows 6-9")
		require.Greater(t, p.ID, PieceID(ArmySize))
	}
	for _, m := range gs.LegalMoves() {
		require.Equal(t, 3, m.From.Row, "Only the front row can move at the start")
	}
}

func TestNewGameRejectsBadSetup(t *testing.T) {
	var empty Setup

	_, err := NewGame(empty, RandomSetup(rand.New(rand.NewSource(1))))

	require.Error(t, err)
}
