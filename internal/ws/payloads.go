package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"chess_arena/internal/rules"
)

// Message is the wire envelope in both directions.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// outMessage is the outbound variant with an arbitrary payload.
type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// client → server
type JoinGamePayload struct {
	GameID string `json:"game_id"`
}

type MakeMovePayload struct {
	GameID string          `json:"game_id"`
	Move   json.RawMessage `json:"move"`
}

type EndGamePayload struct {
	GameID string `json:"game_id"`
	Winner string `json:"winner"`
}

var errBadMove = errors.New("malformed move")

// decodeMove accepts either a {"from","to","promotion"} object or a
// plain UCI string like "e2e4" / "e7e8q".
func decodeMove(raw json.RawMessage) (rules.Move, error) {
	if len(raw) == 0 {
		return rules.Move{}, errBadMove
	}

	var uci string
	if err := json.Unmarshal(raw, &uci); err == nil {
		if l := len(uci); l < 4 || l > 5 {
			return rules.Move{}, fmt.Errorf("%w: %q", errBadMove, uci)
		}
		mv := rules.Move{From: uci[:2], To: uci[2:4]}
		if len(uci) == 5 {
			mv.Promotion = uci[4:]
		}
		return mv, nil
	}

	var mv rules.Move
	if err := json.Unmarshal(raw, &mv); err != nil {
		return rules.Move{}, errBadMove
	}
	if mv.From == "" || mv.To == "" {
		return rules.Move{}, errBadMove
	}
	return mv, nil
}
