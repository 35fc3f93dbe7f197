package session

import "chess_arena/internal/domain"

// Outbound room events. The transport layer delivers them verbatim.
const (
	EventGameUpdate  = "game_update"
	EventInvalidMove = "invalid_move"
	EventGameEnded   = "game_ended"
	EventError       = "error"
)

type GameUpdatePayload struct {
	FEN     string   `json:"fen"`
	Players []string `json:"players"`
	// Outcome carries the on-board result ("1-0", "0-1", "1/2-1/2")
	// once the position is decided; omitted while play continues.
	Outcome string `json:"outcome,omitempty"`
}

type InvalidMovePayload struct {
	Reason string `json:"reason"`
}

type GameEndedPayload struct {
	Winner  string         `json:"winner"`
	PlayerA *domain.Player `json:"player1"`
	PlayerB *domain.Player `json:"player2"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Broadcaster fans an event out to every connection in a match's room,
// preserving call order within one room.
type Broadcaster interface {
	Broadcast(matchID, event string, payload any)
}

// Replier is the originating connection of one inbound command; replies
// reach that connection only, regardless of room membership.
type Replier interface {
	Reply(event string, payload any)
}
