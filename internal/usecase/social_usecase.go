package usecase

import (
	"context"
	"time"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data for rating a product.
type CreateReviewInput struct {
	ProductKind entity.ProductKind
	ProductID   uuid.UUID
	Rating      int
	Comment     string
}

// UpdateReviewInput carries partial review updates.
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ReviewOutput is the client projection of a review.
type ReviewOutput struct {
	ID        uuid.UUID `json:"id"`
	RaterID   uuid.UUID `json:"raterId"`
	RaterRole string    `json:"raterRole"`
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateFeedbackInput defines the data for commenting on a store,
// factory, or product.
type CreateFeedbackInput struct {
	Target   entity.FeedbackTarget
	TargetID uuid.UUID
	Comment  string
	Image    *FileUpload
}

// UpdateFeedbackInput carries partial feedback updates.
type UpdateFeedbackInput struct {
	Comment *string
	Image   *FileUpload
}

// FeedbackOutput is the client projection of feedback.
type FeedbackOutput struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"authorId"`
	Target    string    `json:"target"`
	TargetID  uuid.UUID `json:"targetId"`
	Comment   string    `json:"comment"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SocialUsecase manages reviews and feedback. Raters review store
// products as buyers and factory products as store owners; one review
// per rater and product is enforced by the storage layer.
type SocialUsecase interface {
	CreateReview(ctx context.Context, raterID uuid.UUID, raterRole string, input CreateReviewInput) (*ReviewOutput, error)
	ListReviews(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) ([]*ReviewOutput, error)
	UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, input UpdateReviewInput) (*ReviewOutput, error)
	DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error

	CreateFeedback(ctx context.Context, authorID uuid.UUID, authorRole string, input CreateFeedbackInput) (*FeedbackOutput, error)
	ListFeedback(ctx context.Context, target entity.FeedbackTarget, targetID uuid.UUID) ([]*FeedbackOutput, error)
	UpdateFeedback(ctx context.Context, callerID, feedbackID uuid.UUID, input UpdateFeedbackInput) (*FeedbackOutput, error)
	DeleteFeedback(ctx context.Context, callerID, feedbackID uuid.UUID) error
}
