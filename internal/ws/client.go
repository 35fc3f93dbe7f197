package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"chess_arena/internal/logger"
	"chess_arena/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	readLimit     = 4096
	sendQueueSize = 64
)

// Client is one authenticated websocket connection. Username is the
// identity from the verified token; inbound payloads never override it.
type Client struct {
	Username string

	conn        *websocket.Conn
	hub         *Hub
	coordinator *session.Coordinator
	send        chan []byte
	done        chan struct{}
}

func NewClient(username string, conn *websocket.Conn, hub *Hub, coordinator *session.Coordinator) *Client {
	return &Client{
		Username:    username,
		conn:        conn,
		hub:         hub,
		coordinator: coordinator,
		send:        make(chan []byte, sendQueueSize),
		done:        make(chan struct{}),
	}
}

func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// Reply queues one event for this connection only. It implements
// session.Replier. A client that stopped draining its queue gets the
// message dropped rather than stalling the match.
func (c *Client) Reply(event string, payload any) {
	data, err := json.Marshal(outMessage{Type: event, Payload: payload})
	if err != nil {
		logger.Error("marshal outbound message", "event", event, "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		logger.Warn("send queue full, dropping message", "identity", c.Username, "event", event)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		close(c.done)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read error", "identity", c.Username, "error", err)
			}
			return
		}
		c.handleMessage(raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) handleMessage(raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.Reply(session.EventError, session.ErrorPayload{Message: "malformed message"})
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case MsgJoinGame:
		var p JoinGamePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.GameID == "" {
			c.Reply(session.EventError, session.ErrorPayload{Message: "malformed join_game payload"})
			return
		}
		// Join the room first so the joiner sees its own state
		// broadcast; back out if the coordinator rejects us.
		c.hub.JoinRoom(c, p.GameID)
		if err := c.coordinator.Join(ctx, p.GameID, c.Username, c); err != nil {
			c.hub.LeaveRoom(c, p.GameID)
		}

	case MsgMakeMove:
		var p MakeMovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.GameID == "" {
			c.Reply(session.EventError, session.ErrorPayload{Message: "malformed make_move payload"})
			return
		}
		mv, err := decodeMove(p.Move)
		if err != nil {
			c.Reply(session.EventError, session.ErrorPayload{Message: err.Error()})
			return
		}
		_ = c.coordinator.Move(ctx, p.GameID, c.Username, mv, c)

	case MsgEndGame:
		var p EndGamePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.GameID == "" || p.Winner == "" {
			c.Reply(session.EventError, session.ErrorPayload{Message: "malformed end_game payload"})
			return
		}
		_ = c.coordinator.End(ctx, p.GameID, p.Winner, c)

	default:
		c.Reply(session.EventError, session.ErrorPayload{Message: "unknown event: " + msg.Type})
	}
}
