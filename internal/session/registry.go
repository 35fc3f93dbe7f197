package session

import (
	"sync"
	"time"

	"chess_arena/internal/logger"
	"chess_arena/internal/rules"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

// MaxPlayers is the hard participant cap per match.
const MaxPlayers = 2

// Session is one live match: its board, its participants and its
// lifecycle status. All fields behind mu are owned by whichever
// operation holds the lock; no two operations on the same match id
// ever run concurrently.
type Session struct {
	ID string

	mu         sync.Mutex
	board      rules.Board
	players    []string
	status     Status
	lastActive time.Time
}

func (s *Session) has(identity string) bool {
	for _, p := range s.players {
		if p == identity {
			return true
		}
	}
	return false
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// playersCopy returns the participant list for broadcasting while the
// lock is held.
func (s *Session) playersCopy() []string {
	cp := make([]string, len(s.players))
	copy(cp, s.players)
	return cp
}

// Registry maps match ids to live sessions. Join creates entries, End
// removes them; the map itself is the only state shared across match
// ids and sits behind its own lock.
type Registry struct {
	mu       sync.RWMutex
	engine   rules.Engine
	sessions map[string]*Session

	reaperStop chan struct{}
}

func NewRegistry(engine rules.Engine) *Registry {
	return &Registry{
		engine:   engine,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for matchID, creating a fresh one
// (empty participants, new board, status Waiting) on first join.
func (r *Registry) GetOrCreate(matchID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[matchID]; ok {
		return s
	}

	s := &Session{
		ID:         matchID,
		board:      r.engine.NewBoard(),
		status:     StatusWaiting,
		lastActive: time.Now(),
	}
	r.sessions[matchID] = s
	sessionsActive.Inc()

	logger.Info("session created", "match_id", matchID)
	return s
}

// Lookup is the non-creating variant.
func (r *Registry) Lookup(matchID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[matchID]
	return s, ok
}

// Remove drops the session; removing a missing id is a no-op.
func (r *Registry) Remove(matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[matchID]; !ok {
		return
	}
	delete(r.sessions, matchID)
	sessionsActive.Dec()

	logger.Info("session removed", "match_id", matchID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartReaper removes sessions that saw no Join/Move/End for longer
// than idle and tells their rooms. Abandoned matches otherwise live
// forever in the map.
func (r *Registry) StartReaper(idle, interval time.Duration, rooms Broadcaster) {
	if idle <= 0 {
		return
	}

	r.reaperStop = make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.reapIdle(idle, rooms)
			case <-r.reaperStop:
				return
			}
		}
	}()
}

// StopReaper stops the reaper goroutine; safe to call when the reaper
// never started.
func (r *Registry) StopReaper() {
	if r.reaperStop != nil {
		close(r.reaperStop)
		r.reaperStop = nil
	}
}

// reapIdle never holds the registry lock while taking a session lock.
// End locks in the opposite order (its session, then the registry via
// Remove), so overlapping the two orders would deadlock every match.
func (r *Registry) reapIdle(idle time.Duration, rooms Broadcaster) {
	r.mu.RLock()
	candidates := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		candidates = append(candidates, s)
	}
	r.mu.RUnlock()

	now := time.Now()
	for _, s := range candidates {
		s.mu.Lock()
		stale := s.status != StatusEnded && now.Sub(s.lastActive) > idle
		if stale {
			s.status = StatusEnded
		}
		s.mu.Unlock()
		if !stale {
			continue
		}

		r.mu.Lock()
		// the id may already hold a fresh session if an End slipped in
		// between the snapshot and here; only delete our own pointer
		removed := r.sessions[s.ID] == s
		if removed {
			delete(r.sessions, s.ID)
			sessionsActive.Dec()
		}
		r.mu.Unlock()

		if !removed {
			continue
		}
		sessionsReaped.Inc()
		logger.Warn("reaped idle session", "match_id", s.ID)
		if rooms != nil {
			rooms.Broadcast(s.ID, EventError, ErrorPayload{Message: "match expired after inactivity"})
		}
	}
}
