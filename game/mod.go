package game

// Evaluate scores a non-terminal state from side's perspective. Positive
// values favour side. Implementations must be pure.
type Evaluate func(gs *GameState, side Side) int

// WinScore bounds every static evaluation; terminal scores sit beyond it.
const WinScore = 1_000_000
