// Package impl contains the implementation of the application's business logic.
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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	storeRepo    repository.StoreRepository
	factoryRepo  repository.FactoryRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	tempTokens   service.TempTokenService
	mailer       service.Mailer
	storage      service.ObjectStorage
	signTTL      time.Duration
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	StoreRepo    repository.StoreRepository
	FactoryRepo  repository.FactoryRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	TempTokens   service.TempTokenService
	Mailer       service.Mailer
	Storage      service.ObjectStorage
	SignTTL      SignTTL
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		storeRepo:    params.StoreRepo,
		factoryRepo:  params.FactoryRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		tempTokens:   params.TempTokens,
		mailer:       params.Mailer,
		storage:      params.Storage,
		signTTL:      time.Duration(params.SignTTL),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified account and mails the activation link.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.UserOutput, error) {
	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role")
	}

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
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

	user := &entity.User{
		Name:                    input.Name,
		Email:                   input.Email,
		PasswordHash:            passwordHash,
		Role:                    role,
		Address:                 input.Address,
		Phone:                   input.Phone,
		IsActive:                true,
		VerificationTokenHash:   tokenHash,
		VerificationTokenExpiry: &expiry,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		// The unique index is the authority; the pre-check above only
		// provides the friendlier fast path.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrEmailTaken
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	if err := srv.mailer.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.String("email", user.Email), slog.Any("error", err))

		return nil, domainerrors.ErrMailDispatchFailed
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID), slog.String("role", input.Role))

	return usecase.ToUserOutput(user), nil
}

// VerifyEmail consumes the mailed token. Wrong, expired and reused
// tokens are indistinguishable to the caller.
func (srv *accountService) VerifyEmail(ctx context.Context, token string) error {
	user, err := srv.userRepo.FindByVerificationTokenHash(ctx, srv.tempTokens.HashOf(token))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrInvalidToken
		}

		return errors.Wrap(err, "failed to look up verification token")
	}

	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return domainerrors.ErrInvalidToken
	}

	user.IsVerified = true
	user.VerificationTokenHash = ""
	user.VerificationTokenExpiry = nil

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to mark user verified")
	}

	srv.log(ctx).Info("Email verified", slog.Any("userID", user.ID))

	return nil
}

// Login checks credentials and issues the token pair. Absent accounts,
// wrong passwords and unverified accounts all yield the same error so
// the endpoint is not an account oracle.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.SessionOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) || !user.IsVerified {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role.String(), service.KindUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	user.RefreshToken = refreshToken
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	output := usecase.ToUserOutput(user)
	srv.attachProfileImageURL(ctx, user, output)

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         output,
	}, nil
}

// RefreshAccessToken exchanges the stored refresh credential for a new
// access token.
func (srv *accountService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domainerrors.ErrInvalidCredentials
		}

		return "", errors.Wrap(err, "failed to find user by refresh token")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role.String(), service.KindUser)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	return accessToken, nil
}

// Logout clears the stored refresh credential.
func (srv *accountService) Logout(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find user")
	}

	user.RefreshToken = ""
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to clear refresh token")
	}

	return nil
}

// ForgotPassword issues a reset token and mails the reset link. An
// unknown email succeeds silently so the endpoint is not an oracle.
func (srv *accountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user")
	}

	token, tokenHash, expiry, err := srv.tempTokens.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	user.ResetTokenHash = tokenHash
	user.ResetTokenExpiry = &expiry
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to persist reset token")
	}

	if err := srv.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		srv.log(ctx).Error("Failed to send reset email", slog.String("email", user.Email), slog.Any("error", err))

		return domainerrors.ErrMailDispatchFailed
	}

	return nil
}

// ResetPassword consumes the reset token and replaces the password.
func (srv *accountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	user, err := srv.userRepo.FindByResetTokenHash(ctx, srv.tempTokens.HashOf(input.Token))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrInvalidToken
		}

		return errors.Wrap(err, "failed to look up reset token")
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return domainerrors.ErrInvalidToken
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	user.PasswordHash = passwordHash
	user.ResetTokenHash = ""
	user.ResetTokenExpiry = nil
	user.RefreshToken = ""

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password reset", slog.Any("userID", user.ID))

	return nil
}

// GetProfile returns the caller's profile with a signed image URL.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	output := usecase.ToUserOutput(user)
	srv.attachProfileImageURL(ctx, user, output)

	return output, nil
}

// ListUsers is the administrative read over every account.
func (srv *accountService) ListUsers(ctx context.Context) ([]*usecase.UserOutput, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	outputs := make([]*usecase.UserOutput, 0, len(users))
	for _, user := range users {
		output := usecase.ToUserOutput(user)
		srv.attachProfileImageURL(ctx, user, output)
		outputs = append(outputs, output)
	}

	return outputs, nil
}

// UpdateProfile applies the allow-listed profile fields.
func (srv *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	output := usecase.ToUserOutput(user)
	srv.attachProfileImageURL(ctx, user, output)

	return output, nil
}

// UpdateProfileImage stores the new image and deletes the predecessor
// best-effort.
func (srv *accountService) UpdateProfileImage(ctx context.Context, userID uuid.UUID, upload usecase.FileUpload) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	key := buildObjectKey("users", upload.Filename)
	if err := srv.storage.Upload(ctx, key, upload.ContentType, upload.Content); err != nil {
		srv.log(ctx).Error("Failed to upload profile image", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.ErrStorageFailed
	}

	oldKey := user.ProfileImageKey
	user.ProfileImageKey = key
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to persist profile image key")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	output := usecase.ToUserOutput(user)
	srv.attachProfileImageURL(ctx, user, output)

	return output, nil
}

// DeleteProfileImage removes the image key and the stored object.
func (srv *accountService) DeleteProfileImage(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find user")
	}

	oldKey := user.ProfileImageKey
	user.ProfileImageKey = ""
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to clear profile image key")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	return nil
}

// DeleteAccount removes the account and, depending on the role, its
// owned store or factory with every child collection. All rows go in
// one database transaction; object deletions happen after commit.
func (srv *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find user")
	}

	var orphanedKeys []string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		switch user.Role {
		case entity.RoleStoreAdmin:
			store, err := repoFactory.NewStoreRepository().FindByUserID(ctx, userID)
			if err == nil {
				keys, err := cascadeDeleteStore(ctx, repoFactory, store)
				if err != nil {
					return err
				}
				orphanedKeys = append(orphanedKeys, keys...)
			} else if !errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(err, "failed to find owned store")
			}
		case entity.RoleFactoryAdmin:
			factory, err := repoFactory.NewFactoryRepository().FindByUserID(ctx, userID)
			if err == nil {
				keys, err := cascadeDeleteFactory(ctx, repoFactory, factory)
				if err != nil {
					return err
				}
				orphanedKeys = append(orphanedKeys, keys...)
			} else if !errors.Is(err, repository.ErrFactoryNotFound) {
				return errors.Wrap(err, "failed to find owned factory")
			}
		}

		return repoFactory.NewUserRepository().Delete(ctx, userID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute account deletion transaction")
	}

	orphanedKeys = append(orphanedKeys, user.ProfileImageKey)
	srv.deleteObjectsQuietly(ctx, orphanedKeys)

	srv.log(ctx).Info("Account deleted", slog.Any("userID", userID), slog.String("role", user.Role.String()))

	return nil
}

func (srv *accountService) attachProfileImageURL(ctx context.Context, user *entity.User, output *usecase.UserOutput) {
	if user.ProfileImageKey == "" {
		return
	}

	url, err := srv.storage.SignedURL(ctx, user.ProfileImageKey, srv.signTTL)
	if err != nil {
		srv.log(ctx).Warn("Failed to sign profile image url", slog.Any("userID", user.ID), slog.Any("error", err))

		return
	}

	output.ProfileImageURL = url
}

func (srv *accountService) deleteObjectQuietly(ctx context.Context, key string) {
	srv.deleteObjectsQuietly(ctx, []string{key})
}

// deleteObjectsQuietly removes storage objects best-effort; failures
// are logged and never surfaced to the caller.
func (srv *accountService) deleteObjectsQuietly(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := srv.storage.Delete(ctx, key); err != nil {
			srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
		}
	}
}
