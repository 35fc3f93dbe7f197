package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"chess_arena/internal/config"
	httpserver "chess_arena/internal/http"
	"chess_arena/internal/repository"
	"chess_arena/internal/service"
)

func applyMigrationsToPool(t *testing.T, dbp *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := dbp.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func TestE2E_WS_Match(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	t.Setenv("JWT_SECRET", "test-secret")

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer dbp.Close()

	applyMigrationsToPool(t, dbp)

	service.InitJWT()

	players := repository.NewPlayerRepository(dbp)
	auth := service.NewAuthService(players)
	ctx := context.Background()

	// fresh usernames per run so rating assertions start from 1200
	suffix := time.Now().UnixNano()
	nameA := fmt.Sprintf("e2eA_%d", suffix)
	nameB := fmt.Sprintf("e2eB_%d", suffix)

	if _, err := auth.Register(ctx, nameA, "password-a"); err != nil {
		t.Fatalf("register A: %v", err)
	}
	if _, err := auth.Register(ctx, nameB, "password-b"); err != nil {
		t.Fatalf("register B: %v", err)
	}

	tokenA, err := service.GenerateJWT(nameA)
	if err != nil {
		t.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(nameB)
	if err != nil {
		t.Fatalf("gen token B: %v", err)
	}

	// start server with real routes
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	cfg := &config.Config{SessionIdleTimeout: time.Hour}
	registry := httpserver.RegisterRoutes(r, players, dbp, cfg, "test")
	defer registry.StopReaper()
	ts := httptest.NewServer(r)
	defer ts.Close()

	d := websocket.DefaultDialer
	connA, _, err := d.Dial(strings.Replace(ts.URL, "http", "ws", 1)+"/ws?token="+tokenA, nil)
	if err != nil {
		t.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := d.Dial(strings.Replace(ts.URL, "http", "ws", 1)+"/ws?token="+tokenB, nil)
	if err != nil {
		t.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	// one reader goroutine per connection to avoid concurrent ReadMessage calls
	startReader := func(conn *websocket.Conn) chan []byte {
		out := make(chan []byte, 16)
		go func() {
			defer close(out)
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				out <- msg
			}
		}()
		return out
	}

	chA := startReader(connA)
	chB := startReader(connB)

	waitFor := func(t *testing.T, ch chan []byte, eventType string) map[string]any {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					t.Fatalf("connection closed waiting for %s", eventType)
				}
				var obj map[string]any
				if err := json.Unmarshal(m, &obj); err != nil {
					t.Fatalf("bad message %q: %v", m, err)
				}
				if obj["type"] == eventType {
					return obj
				}
			case <-deadline:
				t.Fatalf("timeout waiting for %s", eventType)
			}
		}
	}

	gameID := fmt.Sprintf("e2e-%d", suffix)
	join := fmt.Sprintf(`{"type":"join_game","payload":{"game_id":"%s"}}`, gameID)

	if err := connA.WriteMessage(websocket.TextMessage, []byte(join)); err != nil {
		t.Fatalf("join A: %v", err)
	}
	waitFor(t, chA, "game_update")

	if err := connB.WriteMessage(websocket.TextMessage, []byte(join)); err != nil {
		t.Fatalf("join B: %v", err)
	}
	// the second join broadcasts to the whole room
	waitFor(t, chA, "game_update")
	update := waitFor(t, chB, "game_update")

	payload, _ := update["payload"].(map[string]any)
	if payload == nil || payload["fen"] == "" {
		t.Fatalf("expected fen in game_update, got %v", update)
	}

	move := fmt.Sprintf(`{"type":"make_move","payload":{"game_id":"%s","move":"e2e4"}}`, gameID)
	if err := connA.WriteMessage(websocket.TextMessage, []byte(move)); err != nil {
		t.Fatalf("move A: %v", err)
	}
	waitFor(t, chA, "game_update")
	afterMove := waitFor(t, chB, "game_update")
	mp, _ := afterMove["payload"].(map[string]any)
	if mp == nil || !strings.Contains(mp["fen"].(string), " b ") {
		t.Fatalf("expected black to move after e2e4, got %v", afterMove)
	}

	end := fmt.Sprintf(`{"type":"end_game","payload":{"game_id":"%s","winner":"%s"}}`, gameID, nameA)
	if err := connB.WriteMessage(websocket.TextMessage, []byte(end)); err != nil {
		t.Fatalf("end B: %v", err)
	}
	endedA := waitFor(t, chA, "game_ended")
	waitFor(t, chB, "game_ended")

	ep, _ := endedA["payload"].(map[string]any)
	if ep == nil || ep["winner"] != nameA {
		t.Fatalf("expected winner %s, got %v", nameA, endedA)
	}

	// both starting at 1200, the K=32 exchange is exactly 16 points
	pA, err := players.GetByUsername(ctx, nameA)
	if err != nil {
		t.Fatalf("get A: %v", err)
	}
	pB, err := players.GetByUsername(ctx, nameB)
	if err != nil {
		t.Fatalf("get B: %v", err)
	}
	if pA.Rating != 1216 || pA.Wins != 1 || pA.GamesPlayed != 1 {
		t.Fatalf("A after match: rating=%v wins=%d games=%d", pA.Rating, pA.Wins, pA.GamesPlayed)
	}
	if pB.Rating != 1184 || pB.Losses != 1 || pB.GamesPlayed != 1 {
		t.Fatalf("B after match: rating=%v losses=%d games=%d", pB.Rating, pB.Losses, pB.GamesPlayed)
	}
}
