package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

// OrderService implements the purchase-request lifecycle.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, log: log}
}

const (
	minBuyerNameLen    = 3
	minBuyerContactLen = 6
)

// Create places a purchase request against an existing product. The
// product's farmer is copied onto the order as a snapshot and the order
// starts in pending.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	buyerName := strings.TrimSpace(in.BuyerName)
	buyerContact := strings.TrimSpace(in.BuyerContact)

	var details []string
	if len(buyerName) < minBuyerNameLen {
		details = append(details, fmt.Sprintf("buyer name must be at least %d characters", minBuyerNameLen))
	}
	if len(buyerContact) < minBuyerContactLen {
		details = append(details, fmt.Sprintf("buyer contact must be at least %d characters", minBuyerContactLen))
	}
	if len(details) > 0 {
		return nil, domain.NewValidationError(details...)
	}

	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ProductID:    product.ID,
		Farmer:       product.Farmer,
		BuyerName:    buyerName,
		BuyerContact: buyerContact,
		Status:       domain.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Uint("order_id", order.ID).Uint("product_id", product.ID).Str("farmer", order.Farmer).Msg("order created")
	return order, nil
}

// Transition moves an order out of pending. Only the farmer the order was
// snapshotted against may do this, only to confirmed or rejected, and only
// once: terminal states accept no further transition.
func (s *OrderService) Transition(ctx context.Context, in ports.TransitionOrderInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Farmer != in.Requester {
		return nil, domain.ErrForbidden
	}

	newStatus, err := domain.ParseOrderStatus(in.NewStatus)
	if err != nil || newStatus == domain.StatusPending {
		return nil, domain.ErrInvalidStatus
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return nil, domain.ErrOrderFinalized
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	s.log.Info().Uint("order_id", order.ID).Str("status", string(newStatus)).Msg("order transitioned")
	return order, nil
}

// ListForFarmer returns the farmer's orders newest-first.
func (s *OrderService) ListForFarmer(ctx context.Context, farmer string) ([]domain.Order, error) {
	return s.orders.ListByFarmer(ctx, farmer)
}
