package postgres

import (
	"context"
	"testing"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRepository_OneStorePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	first := &entity.Store{UserID: owner, Name: "First", Status: entity.StatusPending}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Store{UserID: owner, Name: "Second", Status: entity.StatusPending}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// A different owner is unaffected.
	other := &entity.Store{UserID: uuid.New(), Name: "Other", Status: entity.StatusPending}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestStoreRepository_FindByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	store := &entity.Store{UserID: owner, Name: "Mine", Status: entity.StatusPending}
	require.NoError(t, repo.Create(ctx, store))

	found, err := repo.FindByUserID(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, store.ID, found.ID)

	_, err = repo.FindByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)
}

func TestFactoryRepository_OneFactoryPerUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewFactoryRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	first := &entity.Factory{UserID: owner, Name: "Plant A", Status: entity.StatusPending}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Factory{UserID: owner, Name: "Plant B", Status: entity.StatusPending}
	assert.ErrorIs(t, repo.Create(ctx, second), repository.ErrDuplicateKey)
}

func TestStoreRepository_StatusRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewStoreRepository(db)
	ctx := context.Background()

	store := &entity.Store{UserID: uuid.New(), Name: "Mod", Status: entity.StatusPending}
	require.NoError(t, repo.Create(ctx, store))

	store.Status = entity.StatusLive
	store.IsSuspended = true
	require.NoError(t, repo.Update(ctx, store))

	found, err := repo.FindByID(ctx, store.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusLive, found.Status)
	assert.True(t, found.IsSuspended)
}
