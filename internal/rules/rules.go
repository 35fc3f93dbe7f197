package rules

import "errors"

// ErrIllegalMove is returned when a move is rejected by the engine.
// The board is guaranteed unchanged in that case.
var ErrIllegalMove = errors.New("illegal move")

// Move is an origin/destination pair in algebraic square names
// ("e2" -> "e4"), with an optional promotion piece ("q", "r", "b", "n").
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// UCI renders the move in UCI notation, e.g. "e7e8q".
func (m Move) UCI() string {
	return m.From + m.To + m.Promotion
}

// Outcome is the natural result the board reports once the game is
// decided on the board itself (checkmate, stalemate, dead position).
type Outcome string

const (
	OutcomeNone     Outcome = "*"
	OutcomeWhiteWon Outcome = "1-0"
	OutcomeBlackWon Outcome = "0-1"
	OutcomeDraw     Outcome = "1/2-1/2"
)

// Board is one game's position. It is owned by a single session and
// mutated only through ApplyMove.
type Board interface {
	// ApplyMove validates the move against the current position and
	// applies it. Returns ErrIllegalMove (wrapped) on rejection.
	ApplyMove(m Move) error
	// FEN serializes the current position. Callers treat it as opaque.
	FEN() string
	// Outcome reports the on-board result, OutcomeNone while undecided.
	Outcome() Outcome
}

// Engine creates boards. The session layer depends on this interface
// only, never on a concrete rules implementation.
type Engine interface {
	NewBoard() Board
}
