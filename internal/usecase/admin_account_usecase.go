package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminOutput is the safe projection of an admin account.
type AdminOutput struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Address         string    `json:"address,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsVerified      bool      `json:"isVerified"`
}

// AdminSessionOutput returns the issued tokens after admin login.
type AdminSessionOutput struct {
	AccessToken  string
	RefreshToken string
	Admin        *AdminOutput
}

// ToAdminOutput maps an admin entity to its client projection.
func ToAdminOutput(a *entity.AdminUser) *AdminOutput {
	return &AdminOutput{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role.String(),
		Address:    a.Address,
		Phone:      a.Phone,
		IsVerified: a.IsVerified,
	}
}

// AdminAccountUsecase mirrors AccountUsecase over the separate admin
// principal table.
type AdminAccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AdminOutput, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, input LoginInput) (*AdminSessionOutput, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, adminID uuid.UUID) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error

	GetProfile(ctx context.Context, adminID uuid.UUID) (*AdminOutput, error)
	ListAdmins(ctx context.Context) ([]*AdminOutput, error)
	UpdateProfile(ctx context.Context, adminID uuid.UUID, input UpdateProfileInput) (*AdminOutput, error)
}
