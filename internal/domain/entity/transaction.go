package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus is the outcome of a mock card payment.
type TransactionStatus string

const (
	// TransactionSuccessful marks a completed payment.
	TransactionSuccessful TransactionStatus = "successful"
	// TransactionFailed marks a declined payment.
	TransactionFailed TransactionStatus = "failed"
)

// IsValid checks if the TransactionStatus is a valid value.
func (s TransactionStatus) IsValid() bool {
	return s == TransactionSuccessful || s == TransactionFailed
}

// Transaction records a mock card payment for an order. Card fields are
// opaque strings; nothing validates or settles against a real processor.
// Amount and scope are always re-derived from the order, never trusted
// from the caller.
type Transaction struct {
	ID      uuid.UUID
	Scope   OrderScope
	ScopeID uuid.UUID
	OrderID uuid.UUID
	UserID  uuid.UUID
	Status  TransactionStatus
	Amount  int64 // Cents, copied from the order total.

	CardHolder string
	CardNumber string
	CardExpiry string
	CardCVC    string

	CreatedAt time.Time
}
