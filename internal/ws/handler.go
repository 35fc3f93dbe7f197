package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chess_arena/internal/logger"
	"chess_arena/internal/service"
	"chess_arena/internal/session"
)

// HandleWS upgrades an authenticated connection and starts its pumps.
// The token comes from the query string since browsers can't set
// headers on websocket dials.
func HandleWS(hub *Hub, coordinator *session.Coordinator, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		username, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(username, conn, hub, coordinator)
		logger.Info("ws connected", "identity", username)
		go client.Run()
	}
}
