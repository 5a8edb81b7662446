package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// AuthService covers registration and session token issuance.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies the credentials and returns a signed session token. The
	// role argument is optional: when non-empty it must match the stored
	// role, otherwise login fails with ErrRoleMismatch.
	Login(ctx context.Context, username, password, role string) (string, *domain.User, error)
}
