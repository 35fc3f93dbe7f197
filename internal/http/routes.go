package http

import (
	"time"

	"chess_arena/internal/config"
	"chess_arena/internal/http/handlers"
	"chess_arena/internal/http/middleware"
	"chess_arena/internal/rules"
	"chess_arena/internal/session"
	"chess_arena/internal/store"
	"chess_arena/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reapInterval = 10 * time.Minute

// RegisterRoutes wires the HTTP surface and the realtime match stack.
// The returned registry is handed back so main can stop the reaper on
// shutdown. pool may be nil in DEV_MODE (health checks adapt).
func RegisterRoutes(r *gin.Engine, players store.PlayerStore, pool *pgxpool.Pool, cfg *config.Config, version string) *session.Registry {
	h := handlers.NewHandler(players)
	healthHandler := handlers.NewHealthHandler(pool, version)

	// Health checks
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes, plus legacy unversioned aliases
	registerAPIRoutes(r.Group("/api/v1"), h)
	registerAPIRoutes(r.Group("/api"), h)

	// Realtime match stack: one registry + coordinator behind one hub
	hub := ws.NewHub()
	registry := session.NewRegistry(rules.NewChessEngine())
	registry.StartReaper(cfg.SessionIdleTimeout, reapInterval, hub)

	coordinator := session.NewCoordinator(registry, players, hub)
	r.GET("/ws", ws.HandleWS(hub, coordinator, cfg.AllowedOrigin))

	return registry
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/profile", middleware.JWT(), h.Profile)
	api.GET("/top", h.TopPlayers)
}
