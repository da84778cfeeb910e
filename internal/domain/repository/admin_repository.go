package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAdminNotFound is returned when an admin account is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines the standard operations for admin account
// persistence. It mirrors UserRepository over the separate admin table.
type AdminRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	FindByVerificationTokenHash(ctx context.Context, hash string) (*entity.AdminUser, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*entity.AdminUser, error)
	FindByRefreshToken(ctx context.Context, token string) (*entity.AdminUser, error)
	FindAll(ctx context.Context) ([]*entity.AdminUser, error)
	Create(ctx context.Context, admin *entity.AdminUser) error
	Update(ctx context.Context, admin *entity.AdminUser) error
	Delete(ctx context.Context, id uuid.UUID) error
}
