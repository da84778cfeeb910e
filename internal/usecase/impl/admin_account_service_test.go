package impl

import (
	"context"
	"testing"

	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAccountService_RegisterRejectsUserRoles(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.adminAccounts.Register(context.Background(), usecase.RegisterInput{
		Name:     "Not An Admin",
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAdminAccountService_LoginIssuesAdminToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	session, err := env.adminAccounts.Login(ctx, usecase.LoginInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, adminID, session.Admin.ID)

	claims, err := env.tokens.ValidateToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, service.KindAdmin, claims.Kind)
	assert.Equal(t, "super-admin", claims.Role)
}

func TestAdminAccountService_SeparatePrincipalTables(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The same email can exist as a user and as an admin; the tables
	// are independent.
	_, err := env.accounts.Register(ctx, usecase.RegisterInput{
		Name:     "Dual",
		Email:    "dual@example.com",
		Password: "s3cret-pass",
		Role:     "buyer",
	})
	require.NoError(t, err)

	_, err = env.adminAccounts.Register(ctx, usecase.RegisterInput{
		Name:     "Dual",
		Email:    "dual@example.com",
		Password: "s3cret-pass",
		Role:     "super-admin",
	})
	require.NoError(t, err)
}

func TestAdminAccountService_ListAdmins(t *testing.T) {
	env := newTestEnv(t)

	registerVerifiedAdmin(t, env, "one@example.com")
	registerVerifiedAdmin(t, env, "two@example.com")

	admins, err := env.adminAccounts.ListAdmins(context.Background())
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}
