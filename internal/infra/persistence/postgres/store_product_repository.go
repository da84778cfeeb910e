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

// storeProductRepository implements the domain.StoreProductRepository interface using GORM.
type storeProductRepository struct {
	db *gorm.DB
}

// NewStoreProductRepository is the constructor for storeProductRepository.
func NewStoreProductRepository(db *gorm.DB) repository.StoreProductRepository {
	return &storeProductRepository{db: db}
}

func (repo *storeProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.StoreProduct, error) {
	var productM model.StoreProductModel
	if err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find store product")
	}

	return toStoreProductDomain(&productM), nil
}

// FindByIDInStore scopes the lookup to one store so a foreign product id
// is indistinguishable from a missing one.
func (repo *storeProductRepository) FindByIDInStore(ctx context.Context, storeID, id uuid.UUID) (*entity.StoreProduct, error) {
	var productM model.StoreProductModel
	err := repo.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&productM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find store product")
	}

	return toStoreProductDomain(&productM), nil
}

func (repo *storeProductRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreProduct, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("store_id = ?", storeID))
}

func (repo *storeProductRepository) FindLiveByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreProduct, error) {
	query := repo.db.WithContext(ctx).
		Where("store_id = ? AND status = ? AND is_active = ?", storeID, string(entity.StatusLive), true)

	return repo.findMany(query)
}

func (repo *storeProductRepository) findMany(query *gorm.DB) ([]*entity.StoreProduct, error) {
	var models []model.StoreProductModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list store products")
	}

	products := make([]*entity.StoreProduct, 0, len(models))
	for i := range models {
		products = append(products, toStoreProductDomain(&models[i]))
	}

	return products, nil
}

func (repo *storeProductRepository) Create(ctx context.Context, product *entity.StoreProduct) error {
	productM := toStoreProductModel(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return errors.Wrap(err, "failed to create store product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *storeProductRepository) Update(ctx context.Context, product *entity.StoreProduct) error {
	if err := repo.db.WithContext(ctx).Save(toStoreProductModel(product)).Error; err != nil {
		return errors.Wrap(err, "failed to update store product")
	}

	return nil
}

func (repo *storeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.StoreProductModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete store product")
	}

	return nil
}

func (repo *storeProductRepository) DeleteByStore(ctx context.Context, storeID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.StoreProductModel{}, "store_id = ?", storeID).Error; err != nil {
		return errors.Wrap(err, "failed to delete store products")
	}

	return nil
}

func toStoreProductDomain(m *model.StoreProductModel) *entity.StoreProduct {
	return &entity.StoreProduct{
		ID:          m.ID,
		StoreID:     m.StoreID,
		Name:        m.Name,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		Price:       m.Price,
		Stock:       m.Stock,
		ImageKey:    m.ImageKey,
		Status:      entity.ModerationStatus(m.Status),
		IsActive:    m.IsActive,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toStoreProductModel(p *entity.StoreProduct) *model.StoreProductModel {
	return &model.StoreProductModel{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageKey:    p.ImageKey,
		Status:      string(p.Status),
		IsActive:    p.IsActive,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
