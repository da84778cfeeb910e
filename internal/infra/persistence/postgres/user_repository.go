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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email = ?", email)
}

func (repo *userRepository) FindByVerificationTokenHash(ctx context.Context, hash string) (*entity.User, error) {
	return repo.findOne(ctx, "verification_token_hash = ?", hash)
}

func (repo *userRepository) FindByResetTokenHash(ctx context.Context, hash string) (*entity.User, error) {
	return repo.findOne(ctx, "reset_token_hash = ?", hash)
}

func (repo *userRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return repo.findOne(ctx, "refresh_token = ?", token)
}

func (repo *userRepository) findOne(ctx context.Context, cond string, value any) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where(cond, value).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// Create persists a new user. A duplicate email surfaces as
// repository.ErrDuplicateKey through the unique index on the column.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := toUserModel(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := toUserModel(user)
	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// toUserDomain maps the persistence model back to a pure domain entity.
func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Role:            entity.Role(m.Role),
		Address:         m.Address,
		Phone:           m.Phone,
		ProfileImageKey: m.ProfileImageKey,
		IsVerified:      m.IsVerified,
		IsActive:        m.IsActive,

		VerificationTokenHash:   m.VerificationTokenHash,
		VerificationTokenExpiry: m.VerificationTokenExpiry,
		ResetTokenHash:          m.ResetTokenHash,
		ResetTokenExpiry:        m.ResetTokenExpiry,
		RefreshToken:            m.RefreshToken,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toUserModel maps a domain entity to its persistence model.
func toUserModel(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Role:            u.Role.String(),
		Address:         u.Address,
		Phone:           u.Phone,
		ProfileImageKey: u.ProfileImageKey,
		IsVerified:      u.IsVerified,
		IsActive:        u.IsActive,

		VerificationTokenHash:   u.VerificationTokenHash,
		VerificationTokenExpiry: u.VerificationTokenExpiry,
		ResetTokenHash:          u.ResetTokenHash,
		ResetTokenExpiry:        u.ResetTokenExpiry,
		RefreshToken:            u.RefreshToken,

		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
