package handlers

import (
	"chess_arena/internal/service"
	"chess_arena/internal/store"
)

type Handler struct {
	Players store.PlayerStore
	Auth    *service.AuthService
}

func NewHandler(players store.PlayerStore) *Handler {
	return &Handler{
		Players: players,
		Auth:    service.NewAuthService(players),
	}
}

// username extracts the authenticated identity set by the JWT middleware.
func username(c interface{ Get(any) (any, bool) }) (string, bool) {
	v, ok := c.Get("username")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
