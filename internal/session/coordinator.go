package session

import (
	"context"
	"errors"
	"fmt"

	"chess_arena/internal/logger"
	"chess_arena/internal/rating"
	"chess_arena/internal/rules"
	"chess_arena/internal/store"
)

var (
	ErrUnknownMatch   = errors.New("unknown match")
	ErrMatchFull      = errors.New("game is full")
	ErrNotActive      = errors.New("game is not active")
	ErrNotParticipant = errors.New("not a participant of this match")
	ErrUnknownWinner  = errors.New("winner is not a participant")
)

// Coordinator drives the per-match state machine. Every transition on
// one match id runs under that session's lock, so Join/Move/End for a
// given match are strictly serialized while distinct matches proceed
// in parallel. Broadcasts are emitted under the lock, which fixes the
// order room members observe.
type Coordinator struct {
	registry *Registry
	players  store.PlayerStore
	rooms    Broadcaster
}

func NewCoordinator(registry *Registry, players store.PlayerStore, rooms Broadcaster) *Coordinator {
	return &Coordinator{
		registry: registry,
		players:  players,
		rooms:    rooms,
	}
}

// Join adds identity to the match, creating the session on first join.
// Joining twice is a no-op re-broadcasting current state; a third
// distinct identity is rejected without touching the participant list.
func (c *Coordinator) Join(ctx context.Context, matchID, identity string, sender Replier) error {
	for {
		s := c.registry.GetOrCreate(matchID)
		s.mu.Lock()

		if s.status == StatusEnded {
			// Lost a race against End or the reaper; the id is free
			// again, so create a fresh session.
			s.mu.Unlock()
			continue
		}

		if !s.has(identity) {
			if len(s.players) >= MaxPlayers {
				s.mu.Unlock()
				reply(sender, EventError, ErrorPayload{Message: ErrMatchFull.Error()})
				return ErrMatchFull
			}
			s.players = append(s.players, identity)
			if len(s.players) == MaxPlayers {
				s.status = StatusActive
			}
			logger.Info("player joined", "match_id", matchID, "identity", identity, "players", len(s.players))
		}

		s.touch()
		c.rooms.Broadcast(matchID, EventGameUpdate, gameUpdate(s))
		s.mu.Unlock()
		return nil
	}
}

// Move applies a move through the rules engine. A legal move mutates
// the board and broadcasts the new state; an illegal one leaves the
// board untouched and signals only the sender.
func (c *Coordinator) Move(ctx context.Context, matchID, identity string, mv rules.Move, sender Replier) error {
	s, ok := c.registry.Lookup(matchID)
	if !ok {
		reply(sender, EventError, ErrorPayload{Message: ErrUnknownMatch.Error()})
		return ErrUnknownMatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.status == StatusEnded:
		reply(sender, EventError, ErrorPayload{Message: ErrUnknownMatch.Error()})
		return ErrUnknownMatch
	case s.status != StatusActive:
		reply(sender, EventError, ErrorPayload{Message: ErrNotActive.Error()})
		return ErrNotActive
	case !s.has(identity):
		reply(sender, EventError, ErrorPayload{Message: ErrNotParticipant.Error()})
		return ErrNotParticipant
	}

	if err := s.board.ApplyMove(mv); err != nil {
		invalidMovesTotal.Inc()
		reply(sender, EventInvalidMove, InvalidMovePayload{Reason: err.Error()})
		return err
	}

	s.touch()
	movesTotal.Inc()
	c.rooms.Broadcast(matchID, EventGameUpdate, gameUpdate(s))
	return nil
}

// End finishes the match: resolves both participant records, applies
// the Elo exchange and win/loss counters atomically through the store,
// removes the session and broadcasts the final result. Any failure
// before the store commit leaves ratings, counters and the registry
// untouched.
func (c *Coordinator) End(ctx context.Context, matchID, winner string, sender Replier) error {
	s, ok := c.registry.Lookup(matchID)
	if !ok {
		reply(sender, EventError, ErrorPayload{Message: ErrUnknownMatch.Error()})
		return ErrUnknownMatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusEnded {
		reply(sender, EventError, ErrorPayload{Message: ErrUnknownMatch.Error()})
		return ErrUnknownMatch
	}
	if len(s.players) != MaxPlayers {
		reply(sender, EventError, ErrorPayload{Message: ErrNotActive.Error()})
		return ErrNotActive
	}
	if !s.has(winner) {
		reply(sender, EventError, ErrorPayload{Message: ErrUnknownWinner.Error()})
		return ErrUnknownWinner
	}

	playerA, err := c.players.GetByUsername(ctx, s.players[0])
	if err != nil {
		reply(sender, EventError, ErrorPayload{Message: fmt.Sprintf("resolve %s: unknown player", s.players[0])})
		return fmt.Errorf("resolve %s: %w", s.players[0], err)
	}
	playerB, err := c.players.GetByUsername(ctx, s.players[1])
	if err != nil {
		reply(sender, EventError, ErrorPayload{Message: fmt.Sprintf("resolve %s: unknown player", s.players[1])})
		return fmt.Errorf("resolve %s: %w", s.players[1], err)
	}

	outcome := rating.WinA
	if winner != playerA.Username {
		outcome = rating.LossA
	}
	deltaA, deltaB := rating.Update(playerA.Rating, playerB.Rating, outcome)

	playerA.Rating += deltaA
	playerB.Rating += deltaB
	if outcome == rating.WinA {
		playerA.Wins++
		playerB.Losses++
	} else {
		playerB.Wins++
		playerA.Losses++
	}
	playerA.GamesPlayed++
	playerB.GamesPlayed++

	if err := c.players.UpdatePair(ctx, playerA, playerB); err != nil {
		reply(sender, EventError, ErrorPayload{Message: "failed to record result"})
		return fmt.Errorf("update players for match %s: %w", matchID, err)
	}

	s.status = StatusEnded
	c.registry.Remove(matchID)
	matchesCompleted.Inc()

	logger.Info("match ended",
		"match_id", matchID,
		"winner", winner,
		"delta", deltaA,
	)

	c.rooms.Broadcast(matchID, EventGameEnded, GameEndedPayload{
		Winner:  winner,
		PlayerA: playerA,
		PlayerB: playerB,
	})
	return nil
}

// Status reports the current lifecycle state for a match id.
func (c *Coordinator) Status(matchID string) (Status, bool) {
	s, ok := c.registry.Lookup(matchID)
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, true
}

func reply(sender Replier, event string, payload any) {
	if sender != nil {
		sender.Reply(event, payload)
	}
}

// gameUpdate builds the room payload while the session lock is held.
func gameUpdate(s *Session) GameUpdatePayload {
	p := GameUpdatePayload{
		FEN:     s.board.FEN(),
		Players: s.playersCopy(),
	}
	if o := s.board.Outcome(); o != rules.OutcomeNone {
		p.Outcome = string(o)
	}
	return p
}
