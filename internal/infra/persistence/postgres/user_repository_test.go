package postgres

import (
	"context"
	"testing"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{
		Name:         "Lena",
		Email:        "lena@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleBuyer,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "lena@example.com", byID.Email)
	assert.Equal(t, entity.RoleBuyer, byID.Role)

	byEmail, err := repo.FindByEmail(ctx, "lena@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &entity.User{Name: "A", Email: "taken@example.com", PasswordHash: "x", Role: entity.RoleBuyer}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.User{Name: "B", Email: "taken@example.com", PasswordHash: "y", Role: entity.RoleBuyer}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestUserRepository_FindByTokenHashes(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{
		Name:                  "Tok",
		Email:                 "tok@example.com",
		PasswordHash:          "x",
		Role:                  entity.RoleStoreAdmin,
		VerificationTokenHash: "deadbeef",
	}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByVerificationTokenHash(ctx, "deadbeef")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByVerificationTokenHash(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.FindByResetTokenHash(ctx, "nothing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Name: "Del", Email: "del@example.com", PasswordHash: "x", Role: entity.RoleBuyer}
	require.NoError(t, repo.Create(ctx, user))

	user.IsVerified = true
	user.RefreshToken = "refresh-token-value"
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByRefreshToken(ctx, "refresh-token-value")
	require.NoError(t, err)
	assert.True(t, found.IsVerified)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
