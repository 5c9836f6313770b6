package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"go.uber.org/zap"
)

var ErrUnauthorized = errors.New("invalid credentials")

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Session struct {
	AccessToken string   `json:"access_token"`
	User        UserView `json:"user"`
}

type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenIssuer
	logger *zap.Logger
}

func NewService(users UserStore, hasher PasswordHasher, tokens *TokenIssuer, logger *zap.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", repository.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("email already registered: %w", repository.ErrDuplicate)
		}
		return nil, err
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID))
	return s.session(user)
}

// Login fails with ErrUnauthorized for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Compare(user.Password, password)
	if err != nil {
		s.logger.Warn("Stored password hash unreadable", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, ErrUnauthorized
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	return s.session(user)
}

// Authenticate resolves a bearer token to a user id.
func (s *Service) Authenticate(token string) (uint, error) {
	return s.tokens.Parse(token)
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken: token,
		User:        UserView{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}
