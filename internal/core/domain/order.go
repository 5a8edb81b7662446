package domain

import "time"

// OrderStatus represents the lifecycle state of a purchase request.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusRejected  OrderStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions. Confirmed
// and rejected are terminal: they have no outgoing edges.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusConfirmed, StatusRejected},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// ParseOrderStatus maps a raw string onto a known status. It returns
// ErrInvalidStatus for anything outside the enumeration.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPending, StatusConfirmed, StatusRejected:
		return OrderStatus(raw), nil
	}
	return "", ErrInvalidStatus
}

// Order is a purchase request against a product. Farmer is a snapshot of the
// product's owner taken at creation time, not a live reference: reassigning
// a product later does not retroactively alter existing orders.
type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	ProductID    uint        `json:"product_id" gorm:"index;not null"`
	Farmer       string      `json:"farmer" gorm:"index;size:64;not null"`
	BuyerName    string      `json:"buyer_name" gorm:"size:128;not null"`
	BuyerContact string      `json:"buyer_contact" gorm:"size:128;not null"`
	Status       OrderStatus `json:"status" gorm:"size:16;not null;default:pending"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	// ProductName is filled by list queries joining the catalog; it is not a
	// column on the orders table.
	ProductName string `json:"product_name,omitempty" gorm:"-:migration;->"`
}
