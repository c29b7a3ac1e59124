package admin

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"casehub-backend/internal/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo         Repository
	isAdminEmail func(string) bool
}

func NewService(repo Repository, isAdminEmail func(string) bool) *Service {
	return &Service{
		repo:         repo,
		isAdminEmail: isAdminEmail,
	}
}

// Authenticate checks the password and the allow-list. It returns
// ErrInvalidCredentials for unknown emails, wrong passwords, and emails that
// were removed from the allow-list, so callers cannot tell them apart.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	if s.isAdminEmail != nil && !s.isAdminEmail(email) {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// SeedUser creates or refreshes an account, used by the sync command to
// bootstrap the first admin from the environment.
func (s *Service) SeedUser(ctx context.Context, email, name, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("missing email")
	}
	if password == "" {
		return User{}, errors.New("missing password")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	now := nowUTC()
	user := User{
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
