package domain

import "time"

// DefaultRating is the rating assigned to freshly registered players.
const DefaultRating = 1200

type Player struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Rating       float64   `json:"rating" db:"rating"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	GamesPlayed  int       `json:"games_played" db:"games_played"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func NewPlayer(username, passwordHash string) *Player {
	return &Player{
		Username:     username,
		PasswordHash: passwordHash,
		Rating:       DefaultRating,
	}
}
