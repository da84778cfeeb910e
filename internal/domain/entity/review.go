package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductKind discriminates which catalog a review targets.
type ProductKind string

const (
	// ProductStore targets a StoreProduct.
	ProductStore ProductKind = "store-product"
	// ProductFactory targets a FactoryProduct.
	ProductFactory ProductKind = "factory-product"
)

// IsValid checks if the ProductKind is a valid value.
func (k ProductKind) IsValid() bool {
	return k == ProductStore || k == ProductFactory
}

// Review is a rating with optional comment left on a product. A rater may
// review a given product at most once, enforced by a unique constraint on
// (rater, product kind, product id). ScopeID is the owning store or
// factory, kept denormalized so cascade deletes find reviews directly.
type Review struct {
	ID          uuid.UUID
	RaterID     uuid.UUID
	RaterRole   string // Role string of the rater at submission time.
	ProductKind ProductKind
	ProductID   uuid.UUID
	ScopeID     uuid.UUID
	Rating      int // 1 to 5 inclusive.
	Comment     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
