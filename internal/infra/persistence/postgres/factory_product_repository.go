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

// factoryProductRepository implements the domain.FactoryProductRepository interface using GORM.
type factoryProductRepository struct {
	db *gorm.DB
}

// NewFactoryProductRepository is the constructor for factoryProductRepository.
func NewFactoryProductRepository(db *gorm.DB) repository.FactoryProductRepository {
	return &factoryProductRepository{db: db}
}

func (repo *factoryProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.FactoryProduct, error) {
	var productM model.FactoryProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory product")
	}

	return toFactoryProductDomain(&productM), nil
}

func (repo *factoryProductRepository) FindByIDInFactory(ctx context.Context, factoryID, id uuid.UUID) (*entity.FactoryProduct, error) {
	var productM model.FactoryProductModel
	err := repo.db.WithContext(ctx).
		Where("factory_id = ? AND id = ?", factoryID, id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory product")
	}

	return toFactoryProductDomain(&productM), nil
}

func (repo *factoryProductRepository) FindByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entity.FactoryProduct, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("factory_id = ?", factoryID))
}

func (repo *factoryProductRepository) FindApprovedByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entity.FactoryProduct, error) {
	query := repo.db.WithContext(ctx).
		Where("factory_id = ? AND status = ?", factoryID, string(entity.StatusApproved))

	return repo.findMany(query)
}

func (repo *factoryProductRepository) findMany(query *gorm.DB) ([]*entity.FactoryProduct, error) {
	var models []model.FactoryProductModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list factory products")
	}

	products := make([]*entity.FactoryProduct, 0, len(models))
	for i := range models {
		products = append(products, toFactoryProductDomain(&models[i]))
	}

	return products, nil
}

func (repo *factoryProductRepository) Create(ctx context.Context, product *entity.FactoryProduct) error {
	productM := toFactoryProductModel(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return errors.Wrap(err, "failed to create factory product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *factoryProductRepository) Update(ctx context.Context, product *entity.FactoryProduct) error {
	if err := repo.db.WithContext(ctx).Save(toFactoryProductModel(product)).Error; err != nil {
		return errors.Wrap(err, "failed to update factory product")
	}

	return nil
}

func (repo *factoryProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.FactoryProductModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete factory product")
	}

	return nil
}

func (repo *factoryProductRepository) DeleteByFactory(ctx context.Context, factoryID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.FactoryProductModel{}, "factory_id = ?", factoryID).Error; err != nil {
		return errors.Wrap(err, "failed to delete factory products")
	}

	return nil
}

func toFactoryProductDomain(m *model.FactoryProductModel) *entity.FactoryProduct {
	return &entity.FactoryProduct{
		ID:          m.ID,
		FactoryID:   m.FactoryID,
		Name:        m.Name,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		UnitPrice:   m.UnitPrice,
		MinOrderQty: m.MinOrderQty,
		Stock:       m.Stock,
		ImageKey:    m.ImageKey,
		Status:      entity.ModerationStatus(m.Status),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toFactoryProductModel(p *entity.FactoryProduct) *model.FactoryProductModel {
	return &model.FactoryProductModel{
		ID:          p.ID,
		FactoryID:   p.FactoryID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		UnitPrice:   p.UnitPrice,
		MinOrderQty: p.MinOrderQty,
		Stock:       p.Stock,
		ImageKey:    p.ImageKey,
		Status:      string(p.Status),

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
