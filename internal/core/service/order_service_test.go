package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders map[uint]*domain.Order
	nextID uint
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uint]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uint, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) ListByFarmer(_ context.Context, farmer string) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for _, o := range r.orders {
		if o.Farmer == farmer {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func seedProduct(t *testing.T, repo *stubProductRepo, farmer string) *domain.Product {
	t.Helper()
	product := &domain.Product{Name: "Apples", Price: 2.5, Farmer: farmer}
	if err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func newOrderService(orders *stubOrderRepo, products *stubProductRepo) *OrderService {
	return NewOrderService(orders, products, zerolog.Nop())
}

func TestOrderService_Create_Success(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")

	order, err := svc.Create(context.Background(), ports.CreateOrderInput{
		ProductID:    product.ID,
		BuyerName:    "  Ana  ",
		BuyerContact: "070000",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.Farmer != "bio_farm" {
		t.Fatalf("expected farmer snapshot, got %q", order.Farmer)
	}
	if order.BuyerName != "Ana" {
		t.Fatalf("expected trimmed buyer name, got %q", order.BuyerName)
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	products := newStubProductRepo()
	svc := newOrderService(newStubOrderRepo(), products)
	product := seedProduct(t, products, "bio_farm")

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		ProductID:    product.ID,
		BuyerName:    "Al",
		BuyerContact: "070000",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for 2-char name, got %v", err)
	}

	_, err = svc.Create(context.Background(), ports.CreateOrderInput{
		ProductID:    product.ID,
		BuyerName:    "Ana",
		BuyerContact: "07000",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for 5-char contact, got %v", err)
	}

	// whitespace does not count toward the minimums
	_, err = svc.Create(context.Background(), ports.CreateOrderInput{
		ProductID:    product.ID,
		BuyerName:    "  Al  ",
		BuyerContact: "  070000  ",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for padded short name, got %v", err)
	}
}

func TestOrderService_Create_ProductNotFound(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo())

	if _, err := svc.Create(context.Background(), ports.CreateOrderInput{
		ProductID:    99,
		BuyerName:    "Ana",
		BuyerContact: "070000",
	}); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderService_Transition_SingleUse(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000"})

	updated, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "confirmed",
	})
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	// a terminal order accepts no further transition
	if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "rejected",
	}); err != domain.ErrOrderFinalized {
		t.Fatalf("expected ErrOrderFinalized, got %v", err)
	}
	if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "confirmed",
	}); err != domain.ErrOrderFinalized {
		t.Fatalf("expected ErrOrderFinalized on repeat, got %v", err)
	}
}

func TestOrderService_Transition_Reject(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000"})

	updated, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "rejected",
	})
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if updated.Status != domain.StatusRejected {
		t.Fatalf("expected rejected, got %s", updated.Status)
	}
}

func TestOrderService_Transition_OnlyOwner(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000"})

	if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "other_farm", NewStatus: "confirmed",
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// the order must still be pending and transitionable by its real owner
	if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "confirmed",
	}); err != nil {
		t.Fatalf("owner transition failed after forbidden attempt: %v", err)
	}
}

func TestOrderService_Transition_InvalidStatus(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")

	order, _ := svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000"})

	for _, status := range []string{"shipped", "", "pending", "CONFIRMED"} {
		if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
			OrderID: order.ID, Requester: "bio_farm", NewStatus: status,
		}); err != domain.ErrInvalidStatus {
			t.Fatalf("expected ErrInvalidStatus for %q, got %v", status, err)
		}
	}
}

func TestOrderService_Transition_OrderNotFound(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo())

	if _, err := svc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: 7, Requester: "bio_farm", NewStatus: "confirmed",
	}); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_ListForFarmer(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products)
	product := seedProduct(t, products, "bio_farm")
	other := seedProduct(t, products, "other_farm")

	_, _ = svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000"})
	_, _ = svc.Create(context.Background(), ports.CreateOrderInput{ProductID: other.ID, BuyerName: "Ben", BuyerContact: "071111"})
	_, _ = svc.Create(context.Background(), ports.CreateOrderInput{ProductID: product.ID, BuyerName: "Eda", BuyerContact: "072222"})

	listed, err := svc.ListForFarmer(context.Background(), "bio_farm")
	if err != nil {
		t.Fatalf("ListForFarmer returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected two orders for bio_farm, got %d", len(listed))
	}
	for _, o := range listed {
		if o.Farmer != "bio_farm" {
			t.Fatalf("unexpected farmer in listing: %q", o.Farmer)
		}
	}
}

// Full lifecycle across the services: register, login, create product,
// place order, confirm it once, and verify the terminal state sticks.
func TestMarketplaceLifecycle(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := newStubOrderRepo()

	authSvc := NewAuthService(users, "secret", time.Hour)
	productSvc := newProductService(products, &stubImageStore{}, &stubCatalogCache{})
	orderSvc := newOrderService(orders, products)

	if _, err := authSvc.Register(context.Background(), "bio_farm", "passpass", domain.RoleFarmer); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, farmer, err := authSvc.Login(context.Background(), "bio_farm", "passpass", "")
	if err != nil || token == "" {
		t.Fatalf("login: %v", err)
	}

	product, err := productSvc.Create(context.Background(), ports.CreateProductInput{
		Name: "Apples", Price: 2.5, Farmer: farmer.Username,
	})
	if err != nil || product.ID == 0 {
		t.Fatalf("create product: %v", err)
	}

	order, err := orderSvc.Create(context.Background(), ports.CreateOrderInput{
		ProductID: product.ID, BuyerName: "Ana", BuyerContact: "070000",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}

	confirmed, err := orderSvc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "confirmed",
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	if _, err := orderSvc.Transition(context.Background(), ports.TransitionOrderInput{
		OrderID: order.ID, Requester: "bio_farm", NewStatus: "rejected",
	}); err != domain.ErrOrderFinalized {
		t.Fatalf("expected ErrOrderFinalized, got %v", err)
	}
}
