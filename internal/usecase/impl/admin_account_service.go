package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminAccountService implements the AdminAccountUsecase interface over
// the separate admin principal table.
type adminAccountService struct {
	adminRepo    repository.AdminRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	tempTokens   service.TempTokenService
	mailer       service.Mailer
	logger       *slog.Logger
}

// AdminAccountServiceParams holds dependencies for adminAccountService, injected by Fx.
type AdminAccountServiceParams struct {
	fx.In

	AdminRepo    repository.AdminRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	TempTokens   service.TempTokenService
	Mailer       service.Mailer
	Logger       *slog.Logger
}

// NewAdminAccountService is the constructor for adminAccountService.
func NewAdminAccountService(params AdminAccountServiceParams) usecase.AdminAccountUsecase {
	return &adminAccountService{
		adminRepo:    params.AdminRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		tempTokens:   params.TempTokens,
		mailer:       params.Mailer,
		logger:       params.Logger,
	}
}

func (srv *adminAccountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified admin account and mails the activation link.
func (srv *adminAccountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AdminOutput, error) {
	role := entity.AdminRole(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown admin role")
	}

	if _, err := srv.adminRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, errors.Wrap(err, "failed to check email")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	token, tokenHash, expiry, err := srv.tempTokens.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification token")
	}

	admin := &entity.AdminUser{
		Name:                    input.Name,
		Email:                   input.Email,
		PasswordHash:            passwordHash,
		Role:                    role,
		Address:                 input.Address,
		Phone:                   input.Phone,
		VerificationTokenHash:   tokenHash,
		VerificationTokenExpiry: &expiry,
	}

	if err := srv.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrEmailTaken
		}

		return nil, errors.Wrap(err, "failed to create admin")
	}

	if err := srv.mailer.SendAdminVerificationEmail(ctx, admin.Email, admin.Name, token); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("email", admin.Email), slog.Any("error", err))

		return nil, domainerrors.ErrMailDispatchFailed
	}

	srv.log(ctx).Info("Admin registered", slog.Any("adminID", admin.ID), slog.String("role", input.Role))

	return usecase.ToAdminOutput(admin), nil
}

// VerifyEmail consumes the mailed token.
func (srv *adminAccountService) VerifyEmail(ctx context.Context, token string) error {
	admin, err := srv.adminRepo.FindByVerificationTokenHash(ctx, srv.tempTokens.HashOf(token))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domainerrors.ErrInvalidToken
		}

		return errors.Wrap(err, "failed to look up verification token")
	}

	if admin.VerificationTokenExpiry == nil || time.Now().After(*admin.VerificationTokenExpiry) {
		return domainerrors.ErrInvalidToken
	}

	admin.IsVerified = true
	admin.VerificationTokenHash = ""
	admin.VerificationTokenExpiry = nil

	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to mark admin verified")
	}

	return nil
}

// Login checks credentials and issues the admin token pair.
func (srv *adminAccountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AdminSessionOutput, error) {
	admin, err := srv.adminRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}

	if !srv.hasher.Check(input.Password, admin.PasswordHash) || !admin.IsVerified {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(admin.ID, admin.Email, admin.Name, admin.Role.String(), service.KindAdmin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(admin.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	admin.RefreshToken = refreshToken
	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	srv.log(ctx).Info("Admin logged in", slog.Any("adminID", admin.ID))

	return &usecase.AdminSessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        usecase.ToAdminOutput(admin),
	}, nil
}

// RefreshAccessToken exchanges the stored refresh credential for a new
// access token.
func (srv *adminAccountService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domainerrors.ErrInvalidCredentials
	}

	admin, err := srv.adminRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", domainerrors.ErrInvalidCredentials
		}

		return "", errors.Wrap(err, "failed to find admin by refresh token")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(admin.ID, admin.Email, admin.Name, admin.Role.String(), service.KindAdmin)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	return accessToken, nil
}

// Logout clears the stored refresh credential.
func (srv *adminAccountService) Logout(ctx context.Context, adminID uuid.UUID) error {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find admin")
	}

	admin.RefreshToken = ""
	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to clear refresh token")
	}

	return nil
}

// ForgotPassword issues a reset token; unknown emails succeed silently.
func (srv *adminAccountService) ForgotPassword(ctx context.Context, email string) error {
	admin, err := srv.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find admin")
	}

	token, tokenHash, expiry, err := srv.tempTokens.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	admin.ResetTokenHash = tokenHash
	admin.ResetTokenExpiry = &expiry
	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to persist reset token")
	}

	if err := srv.mailer.SendPasswordResetEmail(ctx, admin.Email, admin.Name, token); err != nil {
		srv.log(ctx).Error("Failed to send reset email", slog.String("email", admin.Email), slog.Any("error", err))

		return domainerrors.ErrMailDispatchFailed
	}

	return nil
}

// ResetPassword consumes the reset token and replaces the password.
func (srv *adminAccountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	admin, err := srv.adminRepo.FindByResetTokenHash(ctx, srv.tempTokens.HashOf(input.Token))
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return domainerrors.ErrInvalidToken
		}

		return errors.Wrap(err, "failed to look up reset token")
	}

	if admin.ResetTokenExpiry == nil || time.Now().After(*admin.ResetTokenExpiry) {
		return domainerrors.ErrInvalidToken
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	admin.PasswordHash = passwordHash
	admin.ResetTokenHash = ""
	admin.ResetTokenExpiry = nil
	admin.RefreshToken = ""

	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	return nil
}

// GetProfile returns the caller's admin profile.
func (srv *adminAccountService) GetProfile(ctx context.Context, adminID uuid.UUID) (*usecase.AdminOutput, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}

	return usecase.ToAdminOutput(admin), nil
}

// ListAdmins lists every admin account.
func (srv *adminAccountService) ListAdmins(ctx context.Context) ([]*usecase.AdminOutput, error) {
	admins, err := srv.adminRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	outputs := make([]*usecase.AdminOutput, 0, len(admins))
	for _, admin := range admins {
		outputs = append(outputs, usecase.ToAdminOutput(admin))
	}

	return outputs, nil
}

// UpdateProfile applies the allow-listed profile fields.
func (srv *adminAccountService) UpdateProfile(ctx context.Context, adminID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.AdminOutput, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find admin")
	}

	if input.Name != nil {
		admin.Name = *input.Name
	}
	if input.Address != nil {
		admin.Address = *input.Address
	}
	if input.Phone != nil {
		admin.Phone = *input.Phone
	}

	if err := srv.adminRepo.Update(ctx, admin); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return usecase.ToAdminOutput(admin), nil
}
