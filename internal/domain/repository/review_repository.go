package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository manages product reviews. The one-review-per-rater
// rule is a unique index on (rater_id, product_kind, product_id);
// Create surfaces a violation as a duplicate-key error.
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByProduct(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) ([]*entity.Review, error)
	CountByProduct(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) (int64, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByScope removes every review under a store or factory, for cascades.
	DeleteByScope(ctx context.Context, scopeID uuid.UUID) error
}
