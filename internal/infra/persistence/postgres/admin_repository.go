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

// adminRepository implements the domain.AdminRepository interface using GORM.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *adminRepository) FindByVerificationTokenHash(ctx context.Context, hash string) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "verification_token_hash = ?", hash)
}

func (repo *adminRepository) FindByResetTokenHash(ctx context.Context, hash string) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "reset_token_hash = ?", hash)
}

func (repo *adminRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.AdminUser, error) {
	return repo.findOne(ctx, "refresh_token = ?", token)
}

func (repo *adminRepository) findOne(ctx context.Context, cond string, value any) (*entity.AdminUser, error) {
	var adminM model.AdminUserModel
	if err := repo.db.WithContext(ctx).Where(cond, value).First(&adminM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAdminNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}

	return toAdminDomain(&adminM), nil
}

func (repo *adminRepository) FindAll(ctx context.Context) ([]*entity.AdminUser, error) {
	var models []model.AdminUserModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	admins := make([]*entity.AdminUser, 0, len(models))
	for i := range models {
		admins = append(admins, toAdminDomain(&models[i]))
	}

	return admins, nil
}

func (repo *adminRepository) Create(ctx context.Context, admin *entity.AdminUser) error {
	adminM := toAdminModel(admin)
	if err := repo.db.WithContext(ctx).Create(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create admin")
	}

	admin.ID = adminM.ID
	admin.CreatedAt = adminM.CreatedAt
	admin.UpdatedAt = adminM.UpdatedAt

	return nil
}

func (repo *adminRepository) Update(ctx context.Context, admin *entity.AdminUser) error {
	adminM := toAdminModel(admin)
	if err := repo.db.WithContext(ctx).Save(adminM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to update admin")
	}

	return nil
}

func (repo *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.AdminUserModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete admin")
	}

	return nil
}

func toAdminDomain(m *model.AdminUserModel) *entity.AdminUser {
	return &entity.AdminUser{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Role:            entity.AdminRole(m.Role),
		Address:         m.Address,
		Phone:           m.Phone,
		ProfileImageKey: m.ProfileImageKey,
		IsVerified:      m.IsVerified,

		VerificationTokenHash:   m.VerificationTokenHash,
		VerificationTokenExpiry: m.VerificationTokenExpiry,
		ResetTokenHash:          m.ResetTokenHash,
		ResetTokenExpiry:        m.ResetTokenExpiry,
		RefreshToken:            m.RefreshToken,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toAdminModel(a *entity.AdminUser) *model.AdminUserModel {
	return &model.AdminUserModel{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		PasswordHash:    a.PasswordHash,
		Role:            a.Role.String(),
		Address:         a.Address,
		Phone:           a.Phone,
		ProfileImageKey: a.ProfileImageKey,
		IsVerified:      a.IsVerified,

		VerificationTokenHash:   a.VerificationTokenHash,
		VerificationTokenExpiry: a.VerificationTokenExpiry,
		ResetTokenHash:          a.ResetTokenHash,
		ResetTokenExpiry:        a.ResetTokenExpiry,
		RefreshToken:            a.RefreshToken,

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
