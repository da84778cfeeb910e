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

// feedbackRepository implements the domain.FeedbackRepository interface using GORM.
type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository is the constructor for feedbackRepository.
func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	var feedbackM model.FeedbackModel
	if err := repo.db.WithContext(ctx).First(&feedbackM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFeedbackNotFound
		}

		return nil, errors.Wrap(err, "failed to find feedback")
	}

	return toFeedbackDomain(&feedbackM), nil
}

func (repo *feedbackRepository) FindByTarget(ctx context.Context, target entity.FeedbackTarget, targetID uuid.UUID) ([]*entity.Feedback, error) {
	var models []model.FeedbackModel
	err := repo.db.WithContext(ctx).
		Where("target = ? AND target_id = ?", string(target), targetID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}

	feedbacks := make([]*entity.Feedback, 0, len(models))
	for i := range models {
		feedbacks = append(feedbacks, toFeedbackDomain(&models[i]))
	}

	return feedbacks, nil
}

func (repo *feedbackRepository) FindByScope(ctx context.Context, scopeID uuid.UUID) ([]*entity.Feedback, error) {
	var models []model.FeedbackModel
	err := repo.db.WithContext(ctx).
		Where("scope_id = ?", scopeID).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback by scope")
	}

	feedbacks := make([]*entity.Feedback, 0, len(models))
	for i := range models {
		feedbacks = append(feedbacks, toFeedbackDomain(&models[i]))
	}

	return feedbacks, nil
}

func (repo *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	feedbackM := toFeedbackModel(feedback)
	if err := repo.db.WithContext(ctx).Create(feedbackM).Error; err != nil {
		return errors.Wrap(err, "failed to create feedback")
	}

	feedback.ID = feedbackM.ID
	feedback.CreatedAt = feedbackM.CreatedAt
	feedback.UpdatedAt = feedbackM.UpdatedAt

	return nil
}

func (repo *feedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	if err := repo.db.WithContext(ctx).Save(toFeedbackModel(feedback)).Error; err != nil {
		return errors.Wrap(err, "failed to update feedback")
	}

	return nil
}

func (repo *feedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.FeedbackModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete feedback")
	}

	return nil
}

func (repo *feedbackRepository) DeleteByScope(ctx context.Context, scopeID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.FeedbackModel{}, "scope_id = ?", scopeID).Error; err != nil {
		return errors.Wrap(err, "failed to delete feedback")
	}

	return nil
}

func toFeedbackDomain(m *model.FeedbackModel) *entity.Feedback {
	return &entity.Feedback{
		ID:         m.ID,
		AuthorID:   m.AuthorID,
		AuthorRole: m.AuthorRole,
		Target:     entity.FeedbackTarget(m.Target),
		TargetID:   m.TargetID,
		ScopeID:    m.ScopeID,
		Comment:    m.Comment,
		ImageKey:   m.ImageKey,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toFeedbackModel(f *entity.Feedback) *model.FeedbackModel {
	return &model.FeedbackModel{
		ID:         f.ID,
		AuthorID:   f.AuthorID,
		AuthorRole: f.AuthorRole,
		Target:     string(f.Target),
		TargetID:   f.TargetID,
		ScopeID:    f.ScopeID,
		Comment:    f.Comment,
		ImageKey:   f.ImageKey,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
