package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).First(&reviewM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) FindByProduct(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) ([]*entity.Review, error) {
	var models []model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("product_kind = ? AND product_id = ?", string(kind), productID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewDomain(&models[i]))
	}

	return reviews, nil
}

func (repo *reviewRepository) CountByProduct(ctx context.Context, kind entity.ProductKind, productID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("product_kind = ? AND product_id = ?", string(kind), productID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count reviews")
	}

	return count, nil
}

// Create persists a new review. A second review by the same rater for
// the same product surfaces as repository.ErrDuplicateKey through the
// composite unique index.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := toReviewModel(review)
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	if err := repo.db.WithContext(ctx).Save(toReviewModel(review)).Error; err != nil {
		return errors.Wrap(err, "failed to update review")
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.ReviewModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete review")
	}

	return nil
}

func (repo *reviewRepository) DeleteByScope(ctx context.Context, scopeID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.ReviewModel{}, "scope_id = ?", scopeID).Error; err != nil {
		return errors.Wrap(err, "failed to delete reviews")
	}

	return nil
}

func toReviewDomain(m *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:          m.ID,
		RaterID:     m.RaterID,
		RaterRole:   m.RaterRole,
		ProductKind: entity.ProductKind(m.ProductKind),
		ProductID:   m.ProductID,
		ScopeID:     m.ScopeID,
		Rating:      m.Rating,
		Comment:     m.Comment,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toReviewModel(r *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:          r.ID,
		RaterID:     r.RaterID,
		RaterRole:   r.RaterRole,
		ProductKind: string(r.ProductKind),
		ProductID:   r.ProductID,
		ScopeID:     r.ScopeID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
