package main

import (
	"context"
	"errors"
	"log"
	"os"

	"chess_arena/internal/db"
	"chess_arena/internal/repository"
	"chess_arena/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()

	players := repository.NewPlayerRepository(pool)
	auth := service.NewAuthService(players)
	ctx := context.Background()

	username := "testplayer"
	password := "testpass123"

	p, err := auth.Register(ctx, username, password)
	if errors.Is(err, service.ErrUsernameTaken) {
		log.Printf("player %s already exists\n", username)
	} else if err != nil {
		log.Fatalf("register failed: %v", err)
	} else {
		log.Printf("player created id=%d rating=%.0f\n", p.ID, p.Rating)
	}

	// verify login round-trip and print a usable token
	token, err := auth.Login(ctx, username, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	p2, err := players.GetByUsername(ctx, username)
	if err != nil {
		log.Fatalf("get by username failed: %v", err)
	}
	log.Printf("fetched player id=%d username=%s rating=%.0f created_at=%v\n", p2.ID, p2.Username, p2.Rating, p2.CreatedAt)
	log.Printf("token=%s\n", token)
}
