package game

import "fmt"

// GameOutcome tells whether the game is still being played.
type GameOutcome uint8

const (
	Ongoing GameOutcome = iota
	Won
	Drawn
)

// Reason explains how a game ended.
type Reason uint8

const (
	NoReason Reason = iota
	FlagCaptured
	NoMoves
	MoveLimit
	Repetition
)

var reasonNames = [...]string{"", "flag captured", "no legal moves", "move limit", "repetition"}

func (r Reason) String() string {
	return reasonNames[r]
}

// Status is the terminal status of a GameState.
type Status struct {
	Outcome GameOutcome
	Winner  Side // Only meaningful when Outcome is Won
	Reason  Reason
}

func (s Status) Terminal() bool {
	return s.Outcome != Ongoing
}

func (s Status) String() string {
	switch s.Outcome {
	case Won:
		return fmt.Sprintf("%s wins (%s)", s.Winner, s.Reason)
	case Drawn:
		return fmt.Sprintf("draw (%s)", s.Reason)
	default:
		return "ongoing"
	}
}

// Only positions this many half-moves back are compared for repetition.
const repetitionHorizon = 128

// record is one entry of the persistent move history. Records are shared
// between successive states and never modified once linked.
type record struct {
	move         Move
	piece        PieceID
	hash         StateHash // Position after the move
	irreversible bool      // The move ended in combat
	prev         *record
}

// GameState is an immutable snapshot of a game. Every transition returns a new
// GameState; the receiver is never modified.
type GameState struct {
	board      Board
	toMove     Side
	halfMoves  int
	history    *record
	origin     StateHash
	hash       StateHash
	status     Status
	lastCombat *CombatResult
	rules      *Rules
}

// NewGameState starts a game from an arbitrary position with toMove to play.
func NewGameState(board Board, toMove Side, options ...RuleOption) *GameState {
	gs := &GameState{
		board:  board,
		toMove: toMove,
		rules:  NewStandardRules(options...),
	}
	gs.hash = hashBoard(&gs.board, toMove)
	gs.origin = gs.hash
	if !gs.hasLegalMove() {
		gs.status = Status{Outcome: Won, Winner: toMove.Opponent(), Reason: NoMoves}
	}
	return gs
}

// Board returns a copy of the board.
func (gs *GameState) Board() Board {
	return gs.board
}

func (gs *GameState) PieceAt(pos Position) (Piece, bool) {
	return gs.board.PieceAt(pos)
}

func (gs *GameState) Pieces(side Side) []Piece {
	return gs.board.Pieces(side)
}

func (gs *GameState) ToMove() Side {
	return gs.toMove
}

func (gs *GameState) HalfMoves() int {
	return gs.halfMoves
}

func (gs *GameState) Status() Status {
	return gs.status
}

func (gs *GameState) Terminal() bool {
	return gs.status.Terminal()
}

// Winner returns the winning side once the game has been won.
func (gs *GameState) Winner() (Side, bool) {
	return gs.status.Winner, gs.status.Outcome == Won
}

func (gs *GameState) Hash() StateHash {
	return gs.hash
}

func (gs *GameState) Rules() Rules {
	return *gs.rules
}

// LastCombat returns the combat resolved by the move that produced this state.
func (gs *GameState) LastCombat() (CombatResult, bool) {
	if gs.lastCombat == nil {
		return CombatResult{}, false
	}
	return *gs.lastCombat, true
}

// LastMove returns the move that produced this state.
func (gs *GameState) LastMove() (Move, bool) {
	if gs.history == nil {
		return Move{}, false
	}
	return gs.history.move, true
}

// History returns every move played since the game was set up, oldest first.
func (gs *GameState) History() []Move {
	var moves []Move
	for r := gs.history; r != nil; r = r.prev {
		moves = append(moves, r.move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// LegalMoves returns every legal move of the side to move, scanning pieces in
// row-major order and then each piece's destinations in row-major order.
// A terminal state has no legal moves.
func (gs *GameState) LegalMoves() []Move {
	if gs.status.Terminal() {
		return nil
	}
	var moves []Move
	for i, p := range gs.board.squares {
		if p.IsEmpty() || p.Side != gs.toMove || !p.Rank.Mobile() {
			continue
		}
		from := positionAt(i)
		for _, to := range gs.board.LegalDestinations(from) {
			m := Move{From: from, To: to, Side: gs.toMove}
			if !gs.breaksTwoSquareRule(m, p.ID) {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (gs *GameState) hasLegalMove() bool {
	for i, p := range gs.board.squares {
		if p.IsEmpty() || p.Side != gs.toMove || !p.Rank.Mobile() {
			continue
		}
		from := positionAt(i)
		for _, to := range gs.board.LegalDestinations(from) {
			if !gs.breaksTwoSquareRule(Move{From: from, To: to, Side: gs.toMove}, p.ID) {
				return true
			}
		}
	}
	return false
}

// ApplyMove validates m against this state and returns the resulting state.
func (gs *GameState) ApplyMove(m Move) (*GameState, error) {
	if gs.status.Terminal() {
		return nil, &IllegalStateError{Op: "apply move", Reason: "game is over: " + gs.status.String()}
	}
	if err := gs.validate(m); err != nil {
		return nil, err
	}
	return gs.play(m), nil
}

func (gs *GameState) validate(m Move) error {
	if m.Side != gs.toMove {
		return &InvalidMoveError{Move: m, Reason: fmt.Sprintf("%s is not to move", m.Side)}
	}
	if !m.From.Valid() || !m.To.Valid() {
		return &InvalidMoveError{Move: m, Reason: "square off the board"}
	}
	piece, ok := gs.board.PieceAt(m.From)
	if !ok {
		return &InvalidMoveError{Move: m, Reason: "no piece on source square"}
	}
	if piece.Side != m.Side {
		return &InvalidMoveError{Move: m, Reason: "source piece belongs to the opponent"}
	}
	if !gs.board.canReach(m.From, m.To) {
		return &InvalidMoveError{Move: m, Reason: "destination not reachable"}
	}
	if gs.breaksTwoSquareRule(m, piece.ID) {
		return &InvalidMoveError{Move: m, Reason: "piece has shuttled between these squares too often"}
	}
	return nil
}

// play applies a validated move.
func (gs *GameState) play(m Move) *GameState {
	next := *gs
	h := uint64(gs.hash)

	piece := gs.board.squares[m.From.index()]
	moved := piece.movedTo(m.To)
	next.board.clear(m.From)
	h ^= pieceKey(piece)

	flagCaptured := false
	next.lastCombat = nil
	target, occupied := gs.board.PieceAt(m.To)
	if occupied {
		result := Resolve(moved, target)
		next.lastCombat = &result
		h ^= pieceKey(target)
		switch result.Outcome {
		case AttackerWins:
			next.board.set(m.To, result.Attacker)
			h ^= pieceKey(result.Attacker)
			flagCaptured = target.Rank == Flag
		case DefenderWins:
			next.board.set(m.To, result.Defender)
			h ^= pieceKey(result.Defender)
		default:
			next.board.clear(m.To)
		}
	} else {
		next.board.set(m.To, moved)
		h ^= pieceKey(moved)
	}

	h ^= zobristBlue
	next.hash = StateHash(h)
	next.toMove = gs.toMove.Opponent()
	next.halfMoves = gs.halfMoves + 1
	next.history = &record{
		move:         m,
		piece:        piece.ID,
		hash:         next.hash,
		irreversible: occupied,
		prev:         gs.history,
	}

	switch {
	case flagCaptured:
		next.status = Status{Outcome: Won, Winner: m.Side, Reason: FlagCaptured}
	case !next.hasLegalMove():
		next.status = Status{Outcome: Won, Winner: m.Side, Reason: NoMoves}
	case next.halfMoves > next.rules.DrawThreshold:
		next.status = Status{Outcome: Drawn, Reason: MoveLimit}
	case next.repetitions() >= next.rules.RepetitionCount:
		next.status = Status{Outcome: Drawn, Reason: Repetition}
	}
	return &next
}

// breaksTwoSquareRule reports whether m would move piece id between the same
// two squares more than the allowed number of consecutive own turns.
func (gs *GameState) breaksTwoSquareRule(m Move, id PieceID) bool {
	count := 0
	for r := gs.history; r != nil; r = r.prev {
		if r.move.Side != m.Side {
			continue
		}
		if r.piece != id || !sameSquares(r.move, m) {
			break
		}
		count++
		if count >= gs.rules.TwoSquareLimit {
			return true
		}
	}
	return false
}

func sameSquares(a, b Move) bool {
	return (a.From == b.From && a.To == b.To) || (a.From == b.To && a.To == b.From)
}

// repetitions counts earlier occurrences of the current position, including
// itself, back to the last combat.
func (gs *GameState) repetitions() int {
	count := 0
	depth := 0
	r := gs.history
	for ; r != nil && depth < repetitionHorizon; r = r.prev {
		if r.hash == gs.hash {
			count++
		}
		if r.irreversible {
			return count
		}
		depth++
	}
	if r == nil && gs.origin == gs.hash {
		count++
	}
	return count
}

// WithRanks returns a copy of the state in which the pieces named in ranks
// carry the given rank instead. The copy keeps the history and rules.
func (gs *GameState) WithRanks(ranks map[PieceID]Rank) *GameState {
	next := *gs
	for i, p := range gs.board.squares {
		if p.IsEmpty() {
			continue
		}
		if rank, ok := ranks[p.ID]; ok && rank != NoRank {
			p.Rank = rank
			next.board.squares[i] = p
		}
	}
	next.hash = hashBoard(&next.board, next.toMove)
	return &next
}
