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

// factoryRepository implements the domain.FactoryRepository interface using GORM.
type factoryRepository struct {
	db *gorm.DB
}

// NewFactoryRepository is the constructor for factoryRepository.
func NewFactoryRepository(db *gorm.DB) repository.FactoryRepository {
	return &factoryRepository{db: db}
}

func (repo *factoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Factory, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *factoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Factory, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *factoryRepository) findOne(ctx context.Context, cond string, value any) (*entity.Factory, error) {
	var factoryM model.FactoryModel
	if err := repo.db.WithContext(ctx).Where(cond, value).First(&factoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFactoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	return toFactoryDomain(&factoryM), nil
}

func (repo *factoryRepository) FindAll(ctx context.Context) ([]*entity.Factory, error) {
	var models []model.FactoryModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list factories")
	}

	factories := make([]*entity.Factory, 0, len(models))
	for i := range models {
		factories = append(factories, toFactoryDomain(&models[i]))
	}

	return factories, nil
}

func (repo *factoryRepository) Create(ctx context.Context, factory *entity.Factory) error {
	factoryM := toFactoryModel(factory)
	if err := repo.db.WithContext(ctx).Create(factoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create factory")
	}

	factory.ID = factoryM.ID
	factory.CreatedAt = factoryM.CreatedAt
	factory.UpdatedAt = factoryM.UpdatedAt

	return nil
}

func (repo *factoryRepository) Update(ctx context.Context, factory *entity.Factory) error {
	if err := repo.db.WithContext(ctx).Save(toFactoryModel(factory)).Error; err != nil {
		return errors.Wrap(err, "failed to update factory")
	}

	return nil
}

func (repo *factoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.FactoryModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete factory")
	}

	return nil
}

func toFactoryDomain(m *model.FactoryModel) *entity.Factory {
	return &entity.Factory{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		LogoKey:     m.LogoKey,
		CoverKey:    m.CoverKey,
		CategoryID:  m.CategoryID,

		LicenseNumber:   m.LicenseNumber,
		LicenseImageKey: m.LicenseImageKey,

		Status:      entity.ModerationStatus(m.Status),
		IsBlocked:   m.IsBlocked,
		IsSuspended: m.IsSuspended,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toFactoryModel(f *entity.Factory) *model.FactoryModel {
	return &model.FactoryModel{
		ID:          f.ID,
		UserID:      f.UserID,
		Name:        f.Name,
		Description: f.Description,
		LogoKey:     f.LogoKey,
		CoverKey:    f.CoverKey,
		CategoryID:  f.CategoryID,

		LicenseNumber:   f.LicenseNumber,
		LicenseImageKey: f.LicenseImageKey,

		Status:      string(f.Status),
		IsBlocked:   f.IsBlocked,
		IsSuspended: f.IsSuspended,

		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
