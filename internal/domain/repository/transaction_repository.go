package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when a payment transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// PaymentTransactionRepository records mock card payments.
type PaymentTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.Transaction, error)
	FindByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) ([]*entity.Transaction, error)
	Create(ctx context.Context, tx *entity.Transaction) error
	DeleteByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) error
}
