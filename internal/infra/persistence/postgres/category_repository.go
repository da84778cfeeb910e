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

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) FindAll(ctx context.Context, kind entity.OwnerKind) ([]*entity.Category, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	var models []model.CategoryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		categories = append(categories, toCategoryDomain(&models[i]))
	}

	return categories, nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := toCategoryModel(category)
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return errors.Wrap(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	if err := repo.db.WithContext(ctx).Save(toCategoryModel(category)).Error; err != nil {
		return errors.Wrap(err, "failed to update category")
	}

	return nil
}

func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

func toCategoryDomain(m *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Kind:      entity.OwnerKind(m.Kind),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toCategoryModel(c *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
