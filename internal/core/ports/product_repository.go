package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// ProductRepository defines the persistence interface for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	// Update persists the full product row; callers are responsible for
	// merging partial input beforehand.
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes the product and reports whether a row was removed.
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]domain.Product, error)
}
