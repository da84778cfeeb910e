package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a global category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository manages the global, admin-curated categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll lists categories, optionally filtered by kind. An empty
	// kind returns every category.
	FindAll(ctx context.Context, kind entity.OwnerKind) ([]*entity.Category, error)

	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
