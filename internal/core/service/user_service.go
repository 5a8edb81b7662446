package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

// UserService implements the admin-only account management surface.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// List returns all accounts. Password hashes are excluded from any JSON
// representation by the domain type itself.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Create provisions an account with any of the three roles. Same rules as
// self-registration.
func (s *UserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	role = strings.ToLower(strings.TrimSpace(role))

	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("user provisioned")
	return created, nil
}

// Delete removes an account by username.
func (s *UserService) Delete(ctx context.Context, username string) error {
	removed, err := s.repo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}

	s.log.Info().Str("username", username).Msg("user deleted")
	return nil
}
