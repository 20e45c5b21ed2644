package game

// Outcome of a single combat.
type Outcome uint8

const (
	AttackerWins Outcome = iota
	DefenderWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case AttackerWins:
		return "attacker wins"
	case DefenderWins:
		return "defender wins"
	default:
		return "draw"
	}
}

// CombatResult carries the outcome and both participants, revealed.
type CombatResult struct {
	Outcome  Outcome
	Attacker Piece
	Defender Piece
}

// Resolve decides a combat between two opposing pieces. Both returned pieces
// are revealed whatever the outcome.
func Resolve(attacker, defender Piece) CombatResult {
	result := CombatResult{
		Attacker: attacker.reveal(),
		Defender: defender.reveal(),
	}
	switch {
	case defender.Rank == Bomb:
		if attacker.Rank == Miner {
			result.Outcome = AttackerWins
		} else {
			result.Outcome = DefenderWins
		}
	case attacker.Rank == Spy && defender.Rank == Marshal:
		// Only when the spy strikes first
		result.Outcome = AttackerWins
	case attacker.Rank.Strength() > defender.Rank.Strength():
		result.Outcome = AttackerWins
	case attacker.Rank.Strength() < defender.Rank.Strength():
		result.Outcome = DefenderWins
	default:
		result.Outcome = Draw
	}
	return result
}
