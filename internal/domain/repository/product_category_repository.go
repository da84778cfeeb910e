package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductCategoryNotFound is returned when an owner-scoped product
// category is not found.
var ErrProductCategoryNotFound = errors.New("product category not found")

// ProductCategoryRepository manages categories owned by a single store
// or factory.
type ProductCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error)

	// FindByIDForOwner scopes the lookup to one owner; a foreign category
	// yields ErrProductCategoryNotFound.
	FindByIDForOwner(ctx context.Context, kind entity.OwnerKind, ownerID, id uuid.UUID) (*entity.ProductCategory, error)

	FindByOwner(ctx context.Context, kind entity.OwnerKind, ownerID uuid.UUID) ([]*entity.ProductCategory, error)

	Create(ctx context.Context, category *entity.ProductCategory) error
	Update(ctx context.Context, category *entity.ProductCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, kind entity.OwnerKind, ownerID uuid.UUID) error
}
