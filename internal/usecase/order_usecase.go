package usecase

import (
	"context"
	"time"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Qty       int
	UnitPrice int64
}

// CreateOrderInput defines the data for placing an order. Total must
// equal the recomputed sum of the line items or the order is rejected.
type CreateOrderInput struct {
	Scope           entity.OrderScope
	ScopeID         uuid.UUID
	Items           []OrderItemInput
	Total           int64
	ShippingAddress string
	Phone           string
}

// OrderItemOutput is the client projection of one order line.
type OrderItemOutput struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Qty       int       `json:"qty"`
	UnitPrice int64     `json:"unitPrice"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

// OrderOutput is the client projection of an order.
type OrderOutput struct {
	ID              uuid.UUID         `json:"id"`
	OrderNumber     string            `json:"orderNumber"`
	Scope           string            `json:"scope"`
	ScopeID         uuid.UUID         `json:"scopeId"`
	UserID          uuid.UUID         `json:"userId"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"paymentStatus"`
	TrackingID      string            `json:"trackingId,omitempty"`
	Total           int64             `json:"total"`
	ShippingAddress string            `json:"shippingAddress,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Items           []OrderItemOutput `json:"items"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CreateTransactionInput defines the data for a mock card payment.
// Amount is never taken from the caller; it is copied from the order.
type CreateTransactionInput struct {
	OrderID    uuid.UUID
	CardHolder string
	CardNumber string
	CardExpiry string
	CardCVC    string
}

// TransactionOutput is the client projection of a payment transaction.
// Card data stays server-side.
type TransactionOutput struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateOrderStatusInput updates fulfillment progress on an order.
type UpdateOrderStatusInput struct {
	Status     entity.OrderStatus
	TrackingID *string
}

// OrderUsecase manages orders and their payments for both the retail
// and the wholesale scope. Retail orders are placed by buyers and
// wholesale orders by store owners; per-scope listings and status
// updates are restricted to the owner of the target store or factory.
type OrderUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, userRole string, input CreateOrderInput) (*OrderOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderOutput, error)
	ListByScope(ctx context.Context, ownerID uuid.UUID, scope entity.OrderScope, scopeID uuid.UUID) ([]*OrderOutput, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*OrderOutput, error)
	UpdateStatus(ctx context.Context, callerID, id uuid.UUID, input UpdateOrderStatusInput) (*OrderOutput, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Pay records a mock card transaction for the order and, on
	// success, flips the order's payment status in the same database
	// transaction.
	Pay(ctx context.Context, userID uuid.UUID, input CreateTransactionInput) (*TransactionOutput, error)
	ListTransactions(ctx context.Context, ownerID uuid.UUID, scope entity.OrderScope, scopeID uuid.UUID) ([]*TransactionOutput, error)
}
