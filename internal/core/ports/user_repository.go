package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Delete removes the user with the given username and reports whether a
	// row was actually removed.
	Delete(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
}
