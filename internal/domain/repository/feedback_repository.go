package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFeedbackNotFound is returned when feedback is not found.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackRepository manages free-form feedback on stores, factories
// and their products.
type FeedbackRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error)
	FindByTarget(ctx context.Context, target entity.FeedbackTarget, targetID uuid.UUID) ([]*entity.Feedback, error)

	// FindByScope lists every feedback row under a store or factory,
	// used to collect image keys before a cascade delete.
	FindByScope(ctx context.Context, scopeID uuid.UUID) ([]*entity.Feedback, error)
	Create(ctx context.Context, feedback *entity.Feedback) error
	Update(ctx context.Context, feedback *entity.Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByScope(ctx context.Context, scopeID uuid.UUID) error
}
