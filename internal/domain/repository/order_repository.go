package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository manages orders and their line items. Create persists
// the order together with its items; callers needing atomicity with
// other writes run inside TransactionManager.Execute.
type OrderRepository interface {
	// FindByID retrieves an order with its line items loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	FindByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) ([]*entity.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) error
}
