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

// storeRepository implements the domain.StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *storeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Store, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *storeRepository) findOne(ctx context.Context, cond string, value any) (*entity.Store, error) {
	var storeM model.StoreModel
	if err := repo.db.WithContext(ctx).Where(cond, value).First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return toStoreDomain(&storeM), nil
}

func (repo *storeRepository) FindAll(ctx context.Context) ([]*entity.Store, error) {
	var models []model.StoreModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	stores := make([]*entity.Store, 0, len(models))
	for i := range models {
		stores = append(stores, toStoreDomain(&models[i]))
	}

	return stores, nil
}

// Create persists a new store. A second store for the same owner
// surfaces as repository.ErrDuplicateKey through the unique index on
// user_id.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := toStoreModel(store)
	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	if err := repo.db.WithContext(ctx).Save(toStoreModel(store)).Error; err != nil {
		return errors.Wrap(err, "failed to update store")
	}

	return nil
}

func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete store")
	}

	return nil
}

func toStoreDomain(m *model.StoreModel) *entity.Store {
	return &entity.Store{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		LogoKey:     m.LogoKey,
		CoverKey:    m.CoverKey,
		CategoryID:  m.CategoryID,

		IDCardNumber:   m.IDCardNumber,
		IDCardImageKey: m.IDCardImageKey,

		Status:      entity.ModerationStatus(m.Status),
		IsBlocked:   m.IsBlocked,
		IsSuspended: m.IsSuspended,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toStoreModel(s *entity.Store) *model.StoreModel {
	return &model.StoreModel{
		ID:          s.ID,
		UserID:      s.UserID,
		Name:        s.Name,
		Description: s.Description,
		LogoKey:     s.LogoKey,
		CoverKey:    s.CoverKey,
		CategoryID:  s.CategoryID,

		IDCardNumber:   s.IDCardNumber,
		IDCardImageKey: s.IDCardImageKey,

		Status:      string(s.Status),
		IsBlocked:   s.IsBlocked,
		IsSuspended: s.IsSuspended,

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
