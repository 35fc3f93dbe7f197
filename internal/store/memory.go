package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"chess_arena/internal/domain"
)

// Memory is an in-memory PlayerStore used in DEV_MODE and in tests.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	players map[string]*domain.Player
}

func NewMemory() *Memory {
	return &Memory{players: make(map[string]*domain.Player)}
}

var _ PlayerStore = (*Memory)(nil)

func (m *Memory) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.players[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) Create(ctx context.Context, p *domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[p.Username]; ok {
		return ErrAlreadyExists
	}

	m.nextID++
	p.ID = m.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	cp := *p
	m.players[p.Username] = &cp
	return nil
}

func (m *Memory) UpdatePair(ctx context.Context, a, b *domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[a.Username]; !ok {
		return ErrNotFound
	}
	if _, ok := m.players[b.Username]; !ok {
		return ErrNotFound
	}

	ca, cb := *a, *b
	m.players[a.Username] = &ca
	m.players[b.Username] = &cb
	return nil
}

func (m *Memory) TopByRating(ctx context.Context, limit int) ([]domain.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]domain.Player, 0, len(m.players))
	for _, p := range m.players {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Rating > res[j].Rating })

	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}
