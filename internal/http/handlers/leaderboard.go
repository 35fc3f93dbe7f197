package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TopPlayers returns the rating leaderboard.
func (h *Handler) TopPlayers(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	players, err := h.Players.TopByRating(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}
