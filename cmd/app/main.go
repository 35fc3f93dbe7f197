package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chess_arena/internal/config"
	"chess_arena/internal/db"
	httpServer "chess_arena/internal/http"
	"chess_arena/internal/http/middleware"
	"chess_arena/internal/logger"
	"chess_arena/internal/repository"
	"chess_arena/internal/service"
	"chess_arena/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.2.0"

func main() {
	cfg := config.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")
	service.InitJWT()

	var pool *pgxpool.Pool
	var players store.PlayerStore
	if cfg.DevMode {
		logger.Warn("DEV_MODE enabled, using in-memory player store")
		players = store.NewMemory()
	} else {
		pool = db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		players = repository.NewPlayerRepository(pool)
	}

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registry := httpServer.RegisterRoutes(r, players, pool, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	registry.StopReaper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
