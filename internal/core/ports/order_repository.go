package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// OrderRepository defines the persistence interface for purchase requests.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
	// ListByFarmer returns the farmer's orders newest-first, with the
	// referenced product's name attached.
	ListByFarmer(ctx context.Context, farmer string) ([]domain.Order, error)
}
