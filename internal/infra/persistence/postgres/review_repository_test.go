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

func TestReviewRepository_DuplicateReview(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	rater := uuid.New()
	product := uuid.New()
	scope := uuid.New()

	first := &entity.Review{
		RaterID:     rater,
		RaterRole:   entity.RoleBuyer.String(),
		ProductKind: entity.ProductStore,
		ProductID:   product,
		ScopeID:     scope,
		Rating:      5,
		Comment:     "great",
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &entity.Review{
		RaterID:     rater,
		RaterRole:   entity.RoleBuyer.String(),
		ProductKind: entity.ProductStore,
		ProductID:   product,
		ScopeID:     scope,
		Rating:      1,
		Comment:     "changed my mind",
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateKey)

	count, err := repo.CountByProduct(ctx, entity.ProductStore, product)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Same rater, same product id, other catalog kind is allowed.
	otherKind := &entity.Review{
		RaterID:     rater,
		RaterRole:   entity.RoleStoreAdmin.String(),
		ProductKind: entity.ProductFactory,
		ProductID:   product,
		ScopeID:     scope,
		Rating:      4,
	}
	assert.NoError(t, repo.Create(ctx, otherKind))
}

func TestReviewRepository_DeleteByScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	scope := uuid.New()
	product := uuid.New()
	for range 3 {
		review := &entity.Review{
			RaterID:     uuid.New(),
			RaterRole:   entity.RoleBuyer.String(),
			ProductKind: entity.ProductStore,
			ProductID:   product,
			ScopeID:     scope,
			Rating:      3,
		}
		require.NoError(t, repo.Create(ctx, review))
	}

	require.NoError(t, repo.DeleteByScope(ctx, scope))

	reviews, err := repo.FindByProduct(ctx, entity.ProductStore, product)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
