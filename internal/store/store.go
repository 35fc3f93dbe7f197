package store

import (
	"context"
	"errors"

	"chess_arena/internal/domain"
)

var (
	ErrNotFound      = errors.New("player not found")
	ErrAlreadyExists = errors.New("player already exists")
)

// PlayerStore is the persistence boundary for player records. The
// session coordinator resolves and mutates players only through it.
type PlayerStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Player, error)
	Create(ctx context.Context, p *domain.Player) error
	// UpdatePair persists both records of a finished match as one
	// atomic unit: either both players are updated or neither is.
	UpdatePair(ctx context.Context, a, b *domain.Player) error
	TopByRating(ctx context.Context, limit int) ([]domain.Player, error)
}
