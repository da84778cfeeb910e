package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderScope discriminates retail orders (buyer -> store) from wholesale
// orders (store owner -> factory).
type OrderScope string

const (
	// ScopeStore is a retail order placed by a buyer against a store.
	ScopeStore OrderScope = "store"
	// ScopeFactory is a wholesale order placed by a store owner against a factory.
	ScopeFactory OrderScope = "factory"
)

// IsValid checks if the OrderScope is a valid value.
func (s OrderScope) IsValid() bool {
	return s == ScopeStore || s == ScopeFactory
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	// OrderPending is the initial state of every order.
	OrderPending OrderStatus = "pending"
	// OrderProcessing means the seller accepted the order.
	OrderProcessing OrderStatus = "processing"
	// OrderShipped means the order left the seller.
	OrderShipped OrderStatus = "shipped"
	// OrderDelivered is the terminal success state.
	OrderDelivered OrderStatus = "delivered"
	// OrderCancelled is the terminal failure state.
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus tracks whether an order has been paid.
type PaymentStatus string

const (
	// PaymentPending is the initial payment state.
	PaymentPending PaymentStatus = "pending"
	// PaymentPaid is set when a successful transaction lands.
	PaymentPaid PaymentStatus = "paid"
	// PaymentFailed is set when a transaction fails.
	PaymentFailed PaymentStatus = "failed"
)

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

// Order is a purchase with its line items. Total is stored in cents and
// must equal the sum of Qty*UnitPrice over the items; creation rejects any
// submission where the client total disagrees with the recomputed sum.
type Order struct {
	ID            uuid.UUID
	OrderNumber   string // Unique reference, ORD-YYYYMMDD-XXXXXX.
	Scope         OrderScope
	ScopeID       uuid.UUID // Store or Factory id, per Scope.
	UserID        uuid.UUID // Principal placing the order.
	Status        OrderStatus
	PaymentStatus PaymentStatus
	TrackingID    string
	Total         int64 // Cents.

	ShippingAddress string
	Phone           string

	Items []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is one line of an order. UnitPrice and ImageKey are
// snapshotted from the product at order time so later catalog edits do
// not rewrite history.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string // Product name snapshot.
	Qty       int    // >= 1.
	UnitPrice int64  // Cents.
	ImageKey  string
}

// ItemsTotal recomputes the order total from its line items.
func (o *Order) ItemsTotal() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += int64(it.Qty) * it.UnitPrice
	}
	return sum
}
