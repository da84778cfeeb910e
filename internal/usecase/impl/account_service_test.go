package impl

import (
	"context"
	"testing"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_RegisterAndVerify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	out, err := env.accounts.Register(ctx, usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	require.NoError(t, err)
	assert.False(t, out.IsVerified)

	// The stored user holds only the token hash, never the cleartext.
	stored, err := env.userRepo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	token := env.mailer.verificationTokens["alice@example.com"]
	require.NotEmpty(t, token)
	assert.NotEqual(t, token, stored.VerificationTokenHash)
	assert.Equal(t, env.tempTokens.HashOf(token), stored.VerificationTokenHash)

	require.NoError(t, env.accounts.VerifyEmail(ctx, token))

	stored, err = env.userRepo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerificationTokenHash)

	// A consumed token cannot be replayed.
	err = env.accounts.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAccountService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerVerifiedUser(t, "bob@example.com", entity.RoleBuyer)

	_, err := env.accounts.Register(ctx, usecase.RegisterInput{
		Name:     "Bob Again",
		Email:    "bob@example.com",
		Password: "other-pass",
		Role:     "buyer",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAccountService_RegisterUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(context.Background(), usecase.RegisterInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "s3cret-pass",
		Role:     "super-admin",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_RegisterMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.failNext = true

	_, err := env.accounts.Register(context.Background(), usecase.RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	assert.ErrorIs(t, err, domainerrors.ErrMailDispatchFailed)
}

func TestAccountService_VerifyEmailExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.accounts.Register(ctx, usecase.RegisterInput{
		Name:     "Dan",
		Email:    "dan@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	require.NoError(t, err)

	user, err := env.userRepo.FindByEmail(ctx, "dan@example.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	user.VerificationTokenExpiry = &past
	require.NoError(t, env.userRepo.Update(ctx, user))

	token := env.mailer.verificationTokens["dan@example.com"]
	err = env.accounts.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAccountService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerVerifiedUser(t, "alice@example.com", entity.RoleBuyer)

	session, err := env.accounts.Login(ctx, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, userID, session.User.ID)

	claims, err := env.tokens.ValidateToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "buyer", claims.Role)
}

func TestAccountService_LoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Unverified account.
	_, err := env.accounts.Register(ctx, usecase.RegisterInput{
		Name:     "Frank",
		Email:    "frank@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	require.NoError(t, err)

	_, err = env.accounts.Login(ctx, usecase.LoginInput{Email: "frank@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Wrong password.
	env.registerVerifiedUser(t, "grace@example.com", entity.RoleBuyer)
	_, err = env.accounts.Login(ctx, usecase.LoginInput{Email: "grace@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown account.
	_, err = env.accounts.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_RefreshAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerVerifiedUser(t, "alice@example.com", entity.RoleBuyer)
	session, err := env.accounts.Login(ctx, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	accessToken, err := env.accounts.RefreshAccessToken(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	require.NoError(t, env.accounts.Logout(ctx, userID))

	// Logout invalidates the stored refresh credential.
	_, err = env.accounts.RefreshAccessToken(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_PasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerVerifiedUser(t, "alice@example.com", entity.RoleBuyer)

	require.NoError(t, env.accounts.ForgotPassword(ctx, "alice@example.com"))
	token := env.mailer.resetTokens["alice@example.com"]
	require.NotEmpty(t, token)

	// Unknown email succeeds silently.
	require.NoError(t, env.accounts.ForgotPassword(ctx, "nobody@example.com"))

	require.NoError(t, env.accounts.ResetPassword(ctx, usecase.ResetPasswordInput{
		Token:       token,
		NewPassword: "new-s3cret",
	}))

	_, err := env.accounts.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = env.accounts.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "new-s3cret"})
	require.NoError(t, err)

	// The reset token is single-use.
	err = env.accounts.ResetPassword(ctx, usecase.ResetPasswordInput{
		Token:       token,
		NewPassword: "another-pass",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAccountService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userID := env.registerVerifiedUser(t, "alice@example.com", entity.RoleBuyer)

	name := "Alice Updated"
	phone := "0123456789"
	out, err := env.accounts.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{
		Name:  &name,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", out.Name)
	assert.Equal(t, "0123456789", out.Phone)

	// Untouched fields survive.
	assert.Equal(t, "alice@example.com", out.Email)
}

func TestAccountService_DeleteAccountCascadesStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	require.NoError(t, env.accounts.DeleteAccount(ctx, ownerID))

	_, err = env.userRepo.FindByID(ctx, ownerID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = env.storeRepo.FindByID(ctx, storeID)
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)

	_, err = env.storeProductRepo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestAccountService_DeleteAccountBuyerKeepsOthers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	require.NoError(t, env.accounts.DeleteAccount(ctx, buyerID))

	// Other accounts and their stores are untouched.
	_, err := env.userRepo.FindByID(ctx, ownerID)
	require.NoError(t, err)
	_, err = env.storeRepo.FindByID(ctx, storeID)
	require.NoError(t, err)
}
