package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// UserService covers the admin-only account management surface.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, username, password, role string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
