package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// socialService implements the SocialUsecase interface. Buyers rate
// store products, store owners rate factory products; the storage
// layer's unique index keeps a rater to one review per product.
type socialService struct {
	reviewRepo         repository.ReviewRepository
	feedbackRepo       repository.FeedbackRepository
	storeProductRepo   repository.StoreProductRepository
	factoryProductRepo repository.FactoryProductRepository
	storeRepo          repository.StoreRepository
	factoryRepo        repository.FactoryRepository
	storage            service.ObjectStorage
	signTTL            time.Duration
	logger             *slog.Logger
}

// SocialServiceParams holds dependencies for socialService, injected by Fx.
type SocialServiceParams struct {
	fx.In

	ReviewRepo         repository.ReviewRepository
	FeedbackRepo       repository.FeedbackRepository
	StoreProductRepo   repository.StoreProductRepository
	FactoryProductRepo repository.FactoryProductRepository
	StoreRepo          repository.StoreRepository
	FactoryRepo        repository.FactoryRepository
	Storage            service.ObjectStorage
	SignTTL            SignTTL
	Logger             *slog.Logger
}

// NewSocialService is the constructor for socialService.
func NewSocialService(params SocialServiceParams) usecase.SocialUsecase {
	return &socialService{
		reviewRepo:         params.ReviewRepo,
		feedbackRepo:       params.FeedbackRepo,
		storeProductRepo:   params.StoreProductRepo,
		factoryProductRepo: params.FactoryProductRepo,
		storeRepo:          params.StoreRepo,
		factoryRepo:        params.FactoryRepo,
		storage:            params.Storage,
		signTTL:            time.Duration(params.SignTTL),
		logger:             params.Logger,
	}
}

func (srv *socialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview rates a product. The rater's role must match the product
// kind: buyers rate store products, store owners rate factory products.
func (srv *socialService) CreateReview(ctx context.Context, raterID uuid.UUID, raterRole string, input usecase.CreateReviewInput) (*usecase.ReviewOutput, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	var scopeID uuid.UUID
	switch input.ProductKind {
	case entity.ProductStore:
		if raterRole != entity.RoleBuyer.String() {
			return nil, domainerrors.ErrForbidden
		}
		product, err := srv.storeProductRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrNotFound
			}

			return nil, errors.Wrap(err, "failed to find store product")
		}
		scopeID = product.StoreID
	case entity.ProductFactory:
		if raterRole != entity.RoleStoreAdmin.String() {
			return nil, domainerrors.ErrForbidden
		}
		product, err := srv.factoryProductRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrNotFound
			}

			return nil, errors.Wrap(err, "failed to find factory product")
		}
		scopeID = product.FactoryID
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product kind")
	}

	review := &entity.Review{
		RaterID:     raterID,
		RaterRole:   raterRole,
		ProductKind: input.ProductKind,
		ProductID:   input.ProductID,
		ScopeID:     scopeID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrDuplicateReview
		}

		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Info("Review created", slog.Any("reviewID", review.ID), slog.Any("productID", input.ProductID))

	return toReviewOutput(review), nil
}

func (srv *socialService) ListReviews(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) ([]*usecase.ReviewOutput, error) {
	if !kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product kind")
	}

	reviews, err := srv.reviewRepo.FindByProduct(ctx, kind, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	outputs := make([]*usecase.ReviewOutput, 0, len(reviews))
	for _, review := range reviews {
		outputs = append(outputs, toReviewOutput(review))
	}

	return outputs, nil
}

// UpdateReview applies partial updates; only the author may update.
func (srv *socialService) UpdateReview(ctx context.Context, callerID, reviewID uuid.UUID, input usecase.UpdateReviewInput) (*usecase.ReviewOutput, error) {
	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	if review.RaterID != callerID {
		return nil, domainerrors.ErrForbidden
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
		}
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	if err := srv.reviewRepo.Update(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return toReviewOutput(review), nil
}

// DeleteReview removes a review; only the author may delete.
func (srv *socialService) DeleteReview(ctx context.Context, callerID, reviewID uuid.UUID) error {
	review, err := srv.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find review")
	}

	if review.RaterID != callerID {
		return domainerrors.ErrForbidden
	}

	if err := srv.reviewRepo.Delete(ctx, review.ID); err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

// CreateFeedback attaches free-form commentary to a store, factory, or
// product, optionally with an image. The author's role must match the
// target side: buyers comment on stores and store products, store
// owners on factories and factory products.
func (srv *socialService) CreateFeedback(ctx context.Context, authorID uuid.UUID, authorRole string, input usecase.CreateFeedbackInput) (*usecase.FeedbackOutput, error) {
	switch input.Target {
	case entity.FeedbackStore, entity.FeedbackStoreProduct:
		if authorRole != entity.RoleBuyer.String() {
			return nil, domainerrors.ErrForbidden
		}
	case entity.FeedbackFactory, entity.FeedbackFactoryProduct:
		if authorRole != entity.RoleStoreAdmin.String() {
			return nil, domainerrors.ErrForbidden
		}
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown feedback target")
	}

	scopeID, err := srv.resolveFeedbackScope(ctx, input.Target, input.TargetID)
	if err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{
		AuthorID:   authorID,
		AuthorRole: authorRole,
		Target:     input.Target,
		TargetID:   input.TargetID,
		ScopeID:    scopeID,
		Comment:    input.Comment,
	}

	if input.Image != nil {
		key := buildObjectKey("feedback", input.Image.Filename)
		if err := srv.storage.Upload(ctx, key, input.Image.ContentType, input.Image.Content); err != nil {
			srv.log(ctx).Error("Failed to upload feedback image", slog.String("key", key), slog.Any("error", err))

			return nil, domainerrors.ErrStorageFailed
		}
		feedback.ImageKey = key
	}

	if err := srv.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, errors.Wrap(err, "failed to create feedback")
	}

	return srv.toFeedbackOutput(ctx, feedback), nil
}

func (srv *socialService) ListFeedback(ctx context.Context, target entity.FeedbackTarget, targetID uuid.UUID) ([]*usecase.FeedbackOutput, error) {
	if !target.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown feedback target")
	}

	feedbacks, err := srv.feedbackRepo.FindByTarget(ctx, target, targetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}

	outputs := make([]*usecase.FeedbackOutput, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		outputs = append(outputs, srv.toFeedbackOutput(ctx, feedback))
	}

	return outputs, nil
}

// UpdateFeedback applies partial updates; only the author may update.
func (srv *socialService) UpdateFeedback(ctx context.Context, callerID, feedbackID uuid.UUID, input usecase.UpdateFeedbackInput) (*usecase.FeedbackOutput, error) {
	feedback, err := srv.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find feedback")
	}

	if feedback.AuthorID != callerID {
		return nil, domainerrors.ErrForbidden
	}

	if input.Comment != nil {
		feedback.Comment = *input.Comment
	}

	oldKey := ""
	if input.Image != nil {
		key := buildObjectKey("feedback", input.Image.Filename)
		if err := srv.storage.Upload(ctx, key, input.Image.ContentType, input.Image.Content); err != nil {
			srv.log(ctx).Error("Failed to upload feedback image", slog.String("key", key), slog.Any("error", err))

			return nil, domainerrors.ErrStorageFailed
		}
		oldKey = feedback.ImageKey
		feedback.ImageKey = key
	}

	if err := srv.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, errors.Wrap(err, "failed to update feedback")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	return srv.toFeedbackOutput(ctx, feedback), nil
}

// DeleteFeedback removes feedback; only the author may delete.
func (srv *socialService) DeleteFeedback(ctx context.Context, callerID, feedbackID uuid.UUID) error {
	feedback, err := srv.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find feedback")
	}

	if feedback.AuthorID != callerID {
		return domainerrors.ErrForbidden
	}

	if err := srv.feedbackRepo.Delete(ctx, feedback.ID); err != nil {
		return errors.Wrap(err, "failed to delete feedback")
	}

	srv.deleteObjectQuietly(ctx, feedback.ImageKey)

	return nil
}

// resolveFeedbackScope checks the target exists and returns the owning
// store or factory id.
func (srv *socialService) resolveFeedbackScope(ctx context.Context, target entity.FeedbackTarget, targetID uuid.UUID) (uuid.UUID, error) {
	switch target {
	case entity.FeedbackStore:
		store, err := srv.storeRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return uuid.Nil, domainerrors.ErrNotFound
			}

			return uuid.Nil, errors.Wrap(err, "failed to find store")
		}

		return store.ID, nil
	case entity.FeedbackFactory:
		factory, err := srv.factoryRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrFactoryNotFound) {
				return uuid.Nil, domainerrors.ErrNotFound
			}

			return uuid.Nil, errors.Wrap(err, "failed to find factory")
		}

		return factory.ID, nil
	case entity.FeedbackStoreProduct:
		product, err := srv.storeProductRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return uuid.Nil, domainerrors.ErrNotFound
			}

			return uuid.Nil, errors.Wrap(err, "failed to find store product")
		}

		return product.StoreID, nil
	case entity.FeedbackFactoryProduct:
		product, err := srv.factoryProductRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return uuid.Nil, domainerrors.ErrNotFound
			}

			return uuid.Nil, errors.Wrap(err, "failed to find factory product")
		}

		return product.FactoryID, nil
	default:
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("unknown feedback target")
	}
}

func (srv *socialService) deleteObjectQuietly(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := srv.storage.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
	}
}

func (srv *socialService) toFeedbackOutput(ctx context.Context, f *entity.Feedback) *usecase.FeedbackOutput {
	output := &usecase.FeedbackOutput{
		ID:        f.ID,
		AuthorID:  f.AuthorID,
		Target:    string(f.Target),
		TargetID:  f.TargetID,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}

	if f.ImageKey != "" {
		url, err := srv.storage.SignedURL(ctx, f.ImageKey, srv.signTTL)
		if err != nil {
			srv.log(ctx).Warn("Failed to sign feedback image url", slog.String("key", f.ImageKey), slog.Any("error", err))
		} else {
			output.ImageURL = url
		}
	}

	return output
}

func toReviewOutput(r *entity.Review) *usecase.ReviewOutput {
	return &usecase.ReviewOutput{
		ID:        r.ID,
		RaterID:   r.RaterID,
		RaterRole: r.RaterRole,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
