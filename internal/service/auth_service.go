package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chess_arena/internal/domain"
	"chess_arena/internal/store"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrBadUsername        = errors.New("username must be 2-32 characters")
	ErrBadPassword        = errors.New("password must be at least 6 characters")
)

// AuthService owns the credential boundary: registration, login and
// profile lookup. Match coordination trusts any identity that passed
// through here.
type AuthService struct {
	players store.PlayerStore
}

func NewAuthService(players store.PlayerStore) *AuthService {
	return &AuthService{players: players}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Player, error) {
	username = strings.TrimSpace(username)
	if l := len(username); l < 2 || l > 32 {
		return nil, ErrBadUsername
	}
	if len(password) < 6 {
		return nil, ErrBadPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := domain.NewPlayer(username, string(hash))
	if err := s.players.Create(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return p, nil
}

// Login verifies the password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	p, err := s.players.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return GenerateJWT(p.Username)
}

func (s *AuthService) Profile(ctx context.Context, username string) (*domain.Player, error) {
	return s.players.GetByUsername(ctx, username)
}
