package repository

import (
	"context"
	"errors"

	"chess_arena/internal/domain"
	"chess_arena/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayerRepository is the Postgres-backed PlayerStore.
type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

var _ store.PlayerStore = (*PlayerRepository)(nil)

func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, rating, wins, losses, games_played, created_at
		 FROM players
		 WHERE username = $1`,
		username,
	)

	var p domain.Player
	if err := row.Scan(
		&p.ID,
		&p.Username,
		&p.PasswordHash,
		&p.Rating,
		&p.Wins,
		&p.Losses,
		&p.GamesPlayed,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO players (username, password_hash, rating)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		p.Username,
		p.PasswordHash,
		p.Rating,
	).Scan(&p.ID, &p.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrAlreadyExists
	}
	return err
}

// UpdatePair writes both match participants in one transaction so a
// finished match never leaves a half-applied rating exchange.
func (r *PlayerRepository) UpdatePair(ctx context.Context, a, b *domain.Player) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range []*domain.Player{a, b} {
		tag, err := tx.Exec(ctx,
			`UPDATE players
			 SET rating = $1, wins = $2, losses = $3, games_played = $4
			 WHERE username = $5`,
			p.Rating, p.Wins, p.Losses, p.GamesPlayed, p.Username,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return store.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *PlayerRepository) TopByRating(ctx context.Context, limit int) ([]domain.Player, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, rating, wins, losses, games_played, created_at
		 FROM players
		 ORDER BY rating DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.ID, &p.Username, &p.Rating, &p.Wins, &p.Losses, &p.GamesPlayed, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
