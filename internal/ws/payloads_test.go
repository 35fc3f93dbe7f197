package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess_arena/internal/rules"
)

func TestDecodeMove(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    rules.Move
		wantErr bool
	}{
		{"object", `{"from":"e2","to":"e4"}`, rules.Move{From: "e2", To: "e4"}, false},
		{"object with promotion", `{"from":"e7","to":"e8","promotion":"q"}`, rules.Move{From: "e7", To: "e8", Promotion: "q"}, false},
		{"uci string", `"e2e4"`, rules.Move{From: "e2", To: "e4"}, false},
		{"uci promotion", `"e7e8q"`, rules.Move{From: "e7", To: "e8", Promotion: "q"}, false},
		{"short string", `"e2"`, rules.Move{}, true},
		{"long string", `"e2e4e6"`, rules.Move{}, true},
		{"missing fields", `{"from":"e2"}`, rules.Move{}, true},
		{"empty", ``, rules.Move{}, true},
		{"number", `42`, rules.Move{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mv, err := decodeMove(json.RawMessage(tc.raw))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, mv)
		})
	}
}

func TestHubRoomsAndBroadcastOrder(t *testing.T) {
	hub := NewHub()
	a := NewClient("alice", nil, hub, nil)
	b := NewClient("bob", nil, hub, nil)

	hub.JoinRoom(a, "m1")
	hub.JoinRoom(b, "m1")
	assert.Equal(t, 2, hub.RoomSize("m1"))

	hub.Broadcast("m1", "game_update", map[string]string{"fen": "one"})
	hub.Broadcast("m1", "game_update", map[string]string{"fen": "two"})
	hub.Broadcast("other", "game_update", nil) // empty room, no-op

	for _, c := range []*Client{a, b} {
		first := <-c.send
		second := <-c.send
		assert.Contains(t, string(first), `"one"`)
		assert.Contains(t, string(second), `"two"`)
		assert.Empty(t, c.send)
	}
}

func TestHubLeaveAndRemove(t *testing.T) {
	hub := NewHub()
	a := NewClient("alice", nil, hub, nil)
	b := NewClient("bob", nil, hub, nil)

	hub.JoinRoom(a, "m1")
	hub.JoinRoom(a, "m2")
	hub.JoinRoom(b, "m1")

	hub.LeaveRoom(a, "m1")
	assert.Equal(t, 1, hub.RoomSize("m1"))
	hub.LeaveRoom(a, "m1") // idempotent

	hub.RemoveClient(a)
	assert.Equal(t, 0, hub.RoomSize("m2"))

	hub.Broadcast("m1", "game_update", nil)
	assert.Len(t, b.send, 1)
	assert.Empty(t, a.send, "removed client receives nothing")
}
