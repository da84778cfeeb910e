package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found. Ownership
// scoping surfaces foreign products through this same error so callers
// cannot enumerate other sellers' catalogs.
var ErrProductNotFound = errors.New("product not found")

// StoreProductRepository manages the retail catalog of a store.
type StoreProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreProduct, error)

	// FindByIDInStore scopes the lookup to one store; a product belonging
	// to another store yields ErrProductNotFound.
	FindByIDInStore(ctx context.Context, storeID, id uuid.UUID) (*entity.StoreProduct, error)

	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreProduct, error)

	// FindLiveByStore lists only live products, for the public surface.
	FindLiveByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreProduct, error)

	Create(ctx context.Context, product *entity.StoreProduct) error
	Update(ctx context.Context, product *entity.StoreProduct) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByStore removes every product of the store, for cascades.
	DeleteByStore(ctx context.Context, storeID uuid.UUID) error
}

// FactoryProductRepository mirrors StoreProductRepository for the
// wholesale catalog.
type FactoryProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FactoryProduct, error)
	FindByIDInFactory(ctx context.Context, factoryID, id uuid.UUID) (*entity.FactoryProduct, error)
	FindByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entity.FactoryProduct, error)
	FindApprovedByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entity.FactoryProduct, error)
	Create(ctx context.Context, product *entity.FactoryProduct) error
	Update(ctx context.Context, product *entity.FactoryProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByFactory(ctx context.Context, factoryID uuid.UUID) error
}
