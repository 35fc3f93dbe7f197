package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"chess_arena/internal/db"
	"chess_arena/internal/repository"
	"chess_arena/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	service.InitJWT()

	players := repository.NewPlayerRepository(pool)
	auth := service.NewAuthService(players)
	ctx := context.Background()

	// prepare players
	for _, name := range []string{"smokeA", "smokeB"} {
		if _, err := auth.Register(ctx, name, "smokepass"); err != nil && !errors.Is(err, service.ErrUsernameTaken) {
			log.Fatalf("register %s: %v", name, err)
		}
	}

	tokenA, err := service.GenerateJWT("smokeA")
	if err != nil {
		log.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT("smokeB")
	if err != nil {
		log.Fatalf("gen token B: %v", err)
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	connA, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenA), nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenB), nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	gameID := fmt.Sprintf("smoke-%d", time.Now().Unix())

	send := func(conn *websocket.Conn, name, msg string) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log.Fatalf("write %s: %v", name, err)
		}
	}

	waitFor := func(conn *websocket.Conn, name, eventType string) {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				continue
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, ok := obj["type"].(string); ok && t == eventType {
				log.Printf("%s got %s: %s", name, eventType, string(msg))
				return
			}
		}
		log.Fatalf("%s: no %s event within deadline", name, eventType)
	}

	join := fmt.Sprintf(`{"type":"join_game","payload":{"game_id":"%s"}}`, gameID)
	send(connA, "A", join)
	waitFor(connA, "A", "game_update")
	send(connB, "B", join)
	waitFor(connB, "B", "game_update")

	send(connA, "A", fmt.Sprintf(`{"type":"make_move","payload":{"game_id":"%s","move":"e2e4"}}`, gameID))
	waitFor(connA, "A", "game_update")
	waitFor(connB, "B", "game_update")

	send(connB, "B", fmt.Sprintf(`{"type":"end_game","payload":{"game_id":"%s","winner":"smokeA"}}`, gameID))
	waitFor(connA, "A", "game_ended")
	waitFor(connB, "B", "game_ended")

	log.Println("smoke test finished")
}
