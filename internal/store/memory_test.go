package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess_arena/internal/domain"
)

func TestMemoryCreateAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	p := domain.NewPlayer("alice", "hash")
	require.NoError(t, s.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, float64(domain.DefaultRating), got.Rating)

	err = s.Create(ctx, domain.NewPlayer("alice", "other"))
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = s.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdatePair(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	a := domain.NewPlayer("alice", "h")
	b := domain.NewPlayer("bob", "h")
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))

	a.Rating, a.Wins, a.GamesPlayed = 1216, 1, 1
	b.Rating, b.Losses, b.GamesPlayed = 1184, 1, 1
	require.NoError(t, s.UpdatePair(ctx, a, b))

	got, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1216.0, got.Rating)
	assert.Equal(t, 1, got.Wins)

	// unknown participant leaves both untouched
	ghost := domain.NewPlayer("ghost", "h")
	err = s.UpdatePair(ctx, ghost, b)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTopByRating(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, u := range []struct {
		name   string
		rating float64
	}{{"low", 1000}, {"high", 1600}, {"mid", 1300}} {
		p := domain.NewPlayer(u.name, "h")
		p.Rating = u.rating
		require.NoError(t, s.Create(ctx, p))
	}

	top, err := s.TopByRating(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Username)
	assert.Equal(t, "mid", top[1].Username)
}
