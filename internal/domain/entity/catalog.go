package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a global, admin-managed classification for stores and factories.
type Category struct {
	ID        uuid.UUID
	Name      string
	Kind      OwnerKind // Which entity kind this category classifies.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerKind discriminates the two owning entity kinds.
type OwnerKind string

const (
	// OwnerStore scopes a record to a Store.
	OwnerStore OwnerKind = "store"
	// OwnerFactory scopes a record to a Factory.
	OwnerFactory OwnerKind = "factory"
)

// IsValid checks if the OwnerKind is a valid value.
func (k OwnerKind) IsValid() bool {
	return k == OwnerStore || k == OwnerFactory
}

// StoreProduct is a retail catalog item scoped to its owning store.
// Prices are int64 minor units (cents) so totals compare exactly.
type StoreProduct struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Description string
	CategoryID  *uuid.UUID // Optional owner-scoped ProductCategory.
	Price       int64      // Cents, >= 0.
	Stock       int        // Units, >= 0.
	ImageKey    string
	Status      ModerationStatus // pending -> live | rejected, moderation only.
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FactoryProduct is a wholesale catalog item scoped to its owning factory.
type FactoryProduct struct {
	ID          uuid.UUID
	FactoryID   uuid.UUID
	Name        string
	Description string
	CategoryID  *uuid.UUID
	UnitPrice   int64 // Cents per unit, >= 0.
	MinOrderQty int   // Minimum order quantity, >= 1.
	Stock       int
	ImageKey    string
	Status      ModerationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductCategory is a classification owned by a single store or factory,
// with an optional logo in object storage.
type ProductCategory struct {
	ID        uuid.UUID
	OwnerKind OwnerKind
	OwnerID   uuid.UUID // The owning Store or Factory id.
	Name      string
	LogoKey   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
