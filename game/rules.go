package game

// Policy constants of the standard rule set.
const (
	DefaultDrawThreshold   = 2000
	DefaultTwoSquareLimit  = 3
	DefaultRepetitionCount = 3
)

// Rules holds the policy constants a GameState is played under. A Rules value
// is shared between states and never modified after construction.
type Rules struct {
	// DrawThreshold ends the game in a draw once the half-move counter exceeds it.
	DrawThreshold int
	// TwoSquareLimit caps consecutive moves of one piece between the same two squares.
	TwoSquareLimit int
	// RepetitionCount is the number of occurrences of a position that draws the game.
	RepetitionCount int
}

type RuleOption func(*Rules)

func WithDrawThreshold(halfMoves int) RuleOption {
	return func(r *Rules) {
		if halfMoves > 0 {
			r.DrawThreshold = halfMoves
		}
	}
}

func WithTwoSquareLimit(moves int) RuleOption {
	return func(r *Rules) {
		if moves > 0 {
			r.TwoSquareLimit = moves
		}
	}
}

func WithRepetitionCount(occurrences int) RuleOption {
	return func(r *Rules) {
		if occurrences > 1 {
			r.RepetitionCount = occurrences
		}
	}
}

func NewStandardRules(options ...RuleOption) *Rules {
	r := &Rules{
		DrawThreshold:   DefaultDrawThreshold,
		TwoSquareLimit:  DefaultTwoSquareLimit,
		RepetitionCount: DefaultRepetitionCount,
	}
	for _, option := range options {
		option(r)
	}
	return r
}
