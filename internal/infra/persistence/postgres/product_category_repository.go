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

// productCategoryRepository implements the domain.ProductCategoryRepository interface using GORM.
type productCategoryRepository struct {
	db *gorm.DB
}

// NewProductCategoryRepository is the constructor for productCategoryRepository.
func NewProductCategoryRepository(db *gorm.DB) repository.ProductCategoryRepository {
	return &productCategoryRepository{db: db}
}

func (repo *productCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error) {
	var categoryM model.ProductCategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find product category")
	}

	return toProductCategoryDomain(&categoryM), nil
}

func (repo *productCategoryRepository) FindByIDForOwner(ctx context.Context, kind entity.OwnerKind, ownerID, id uuid.UUID) (*entity.ProductCategory, error) {
	var categoryM model.ProductCategoryModel
	err := repo.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ? AND id = ?", string(kind), ownerID, id).
		First(&categoryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find product category")
	}

	return toProductCategoryDomain(&categoryM), nil
}

func (repo *productCategoryRepository) FindByOwner(ctx context.Context, kind entity.OwnerKind, ownerID uuid.UUID) ([]*entity.ProductCategory, error) {
	var models []model.ProductCategoryModel
	err := repo.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", string(kind), ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product categories")
	}

	categories := make([]*entity.ProductCategory, 0, len(models))
	for i := range models {
		categories = append(categories, toProductCategoryDomain(&models[i]))
	}

	return categories, nil
}

func (repo *productCategoryRepository) Create(ctx context.Context, category *entity.ProductCategory) error {
	categoryM := toProductCategoryModel(category)
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		return errors.Wrap(err, "failed to create product category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *productCategoryRepository) Update(ctx context.Context, category *entity.ProductCategory) error {
	if err := repo.db.WithContext(ctx).Save(toProductCategoryModel(category)).Error; err != nil {
		return errors.Wrap(err, "failed to update product category")
	}

	return nil
}

func (repo *productCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.ProductCategoryModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete product category")
	}

	return nil
}

func (repo *productCategoryRepository) DeleteByOwner(ctx context.Context, kind entity.OwnerKind, ownerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.ProductCategoryModel{}, "owner_kind = ? AND owner_id = ?", string(kind), ownerID).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete product categories")
	}

	return nil
}

func toProductCategoryDomain(m *model.ProductCategoryModel) *entity.ProductCategory {
	return &entity.ProductCategory{
		ID:        m.ID,
		OwnerKind: entity.OwnerKind(m.OwnerKind),
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		LogoKey:   m.LogoKey,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toProductCategoryModel(c *entity.ProductCategory) *model.ProductCategoryModel {
	return &model.ProductCategoryModel{
		ID:        c.ID,
		OwnerKind: string(c.OwnerKind),
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		LogoKey:   c.LogoKey,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
