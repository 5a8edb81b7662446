package ports

import (
	"context"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

// CreateOrderInput carries all data needed to place a purchase request.
type CreateOrderInput struct {
	ProductID    uint
	BuyerName    string
	BuyerContact string
}

// TransitionOrderInput carries a status change request. Requester is the
// authenticated username and must match the order's farmer snapshot.
type TransitionOrderInput struct {
	OrderID   uint
	Requester string
	NewStatus string
}

// OrderService defines use-case operations on purchase requests.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Transition(ctx context.Context, in TransitionOrderInput) (*domain.Order, error)
	ListForFarmer(ctx context.Context, farmer string) ([]domain.Order, error)
}
