// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// FileUpload carries an uploaded file from the delivery layer into a
// use case. Content is streamed straight to object storage.
type FileUpload struct {
	Content     io.Reader
	ContentType string
	Filename    string
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Address  string
	Phone    string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ResetPasswordInput carries the emailed token and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// UpdateProfileInput carries the allow-listed profile fields. Nil
// pointers leave the current value untouched.
type UpdateProfileInput struct {
	Name    *string
	Address *string
	Phone   *string
}

// --- Output DTOs ---

// UserOutput is the safe projection of a user returned to clients.
// Credential and token fields never leave the use case layer.
type UserOutput struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Address         string    `json:"address,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsVerified      bool      `json:"isVerified"`
}

// SessionOutput returns the issued tokens after login or refresh.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	User         *UserOutput
}

// ToUserOutput maps a user entity to its client projection. The image
// URL is resolved separately because signing needs the storage service.
func ToUserOutput(u *entity.User) *UserOutput {
	return &UserOutput{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.String(),
		Address:    u.Address,
		Phone:      u.Phone,
		IsVerified: u.IsVerified,
	}
}

// AccountUsecase defines the identity and session operations for
// ordinary users. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*UserOutput, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserOutput, error)
	ListUsers(ctx context.Context) ([]*UserOutput, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserOutput, error)
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, upload FileUpload) (*UserOutput, error)
	DeleteProfileImage(ctx context.Context, userID uuid.UUID) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
