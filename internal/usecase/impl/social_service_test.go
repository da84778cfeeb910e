package impl

import (
	"context"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_BuyerReviewsStoreProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	env.createStore(t, ownerID, "Corner Shop")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	review, err := env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   product.ID,
		Rating:      5,
		Comment:     "Great mug",
	})
	require.NoError(t, err)
	assert.Equal(t, buyerID, review.RaterID)
	assert.Equal(t, 5, review.Rating)

	// One review per rater and product.
	_, err = env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   product.ID,
		Rating:      2,
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateReview)

	// Another buyer may still review.
	otherID := env.registerVerifiedUser(t, "other@example.com", entity.RoleBuyer)
	_, err = env.social.CreateReview(ctx, otherID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   product.ID,
		Rating:      3,
	})
	require.NoError(t, err)

	reviews, err := env.social.ListReviews(ctx, entity.ProductStore, product.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
}

func TestSocialService_RoleGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storeOwner := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	factoryOwner := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	env.createStore(t, storeOwner, "Corner Shop")
	env.createFactory(t, factoryOwner, "Widget Works")

	storeProduct, err := env.storeCatalog.CreateProduct(ctx, storeOwner, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	factoryProduct, err := env.factoryCatalog.CreateProduct(ctx, factoryOwner, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 10,
		Stock:       1000,
	})
	require.NoError(t, err)

	// Store owners cannot rate store products.
	_, err = env.social.CreateReview(ctx, storeOwner, "store-admin", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   storeProduct.ID,
		Rating:      5,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Buyers cannot rate factory products.
	_, err = env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductFactory,
		ProductID:   factoryProduct.ID,
		Rating:      5,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Store owners rate factory products.
	_, err = env.social.CreateReview(ctx, storeOwner, "store-admin", usecase.CreateReviewInput{
		ProductKind: entity.ProductFactory,
		ProductID:   factoryProduct.ID,
		Rating:      4,
	})
	require.NoError(t, err)
}

func TestSocialService_RatingBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	env.createStore(t, ownerID, "Corner Shop")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
			ProductKind: entity.ProductStore,
			ProductID:   product.ID,
			Rating:      rating,
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}
}

func TestSocialService_OnlyAuthorMutatesReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	strangerID := env.registerVerifiedUser(t, "stranger@example.com", entity.RoleBuyer)
	env.createStore(t, ownerID, "Corner Shop")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	review, err := env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   product.ID,
		Rating:      4,
	})
	require.NoError(t, err)

	rating := 1
	_, err = env.social.UpdateReview(ctx, strangerID, review.ID, usecase.UpdateReviewInput{Rating: &rating})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = env.social.DeleteReview(ctx, strangerID, review.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := env.social.UpdateReview(ctx, buyerID, review.ID, usecase.UpdateReviewInput{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)

	require.NoError(t, env.social.DeleteReview(ctx, buyerID, review.ID))
}

func TestSocialService_FeedbackLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	feedback, err := env.social.CreateFeedback(ctx, buyerID, "buyer", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackStore,
		TargetID: storeID,
		Comment:  "Quick delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.FeedbackStore), feedback.Target)

	// Unlike reviews, a second feedback from the same author is fine.
	_, err = env.social.CreateFeedback(ctx, buyerID, "buyer", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackStore,
		TargetID: storeID,
		Comment:  "Still quick",
	})
	require.NoError(t, err)

	list, err := env.social.ListFeedback(ctx, entity.FeedbackStore, storeID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// Only the author mutates.
	comment := "edited"
	_, err = env.social.UpdateFeedback(ctx, ownerID, feedback.ID, usecase.UpdateFeedbackInput{Comment: &comment})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := env.social.UpdateFeedback(ctx, buyerID, feedback.ID, usecase.UpdateFeedbackInput{Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	require.NoError(t, env.social.DeleteFeedback(ctx, buyerID, feedback.ID))
}

func TestSocialService_FeedbackRoleGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	storeOwner := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	factoryOwner := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, storeOwner, "Corner Shop")
	factoryID := env.createFactory(t, factoryOwner, "Widget Works")

	// Only buyers comment on stores; nothing is persisted otherwise.
	_, err := env.social.CreateFeedback(ctx, factoryOwner, "factory-admin", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackStore,
		TargetID: storeID,
		Comment:  "Nice shop",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	list, err := env.social.ListFeedback(ctx, entity.FeedbackStore, storeID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Only store owners comment on factories.
	_, err = env.social.CreateFeedback(ctx, buyerID, "buyer", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackFactory,
		TargetID: factoryID,
		Comment:  "Solid widgets",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.social.CreateFeedback(ctx, storeOwner, "store-admin", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackFactory,
		TargetID: factoryID,
		Comment:  "Solid widgets",
	})
	require.NoError(t, err)
}

func TestSocialService_FeedbackUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)

	_, err := env.social.CreateFeedback(ctx, buyerID, "buyer", usecase.CreateFeedbackInput{
		Target:   entity.FeedbackStore,
		TargetID: uuid.New(),
		Comment:  "Ghost store",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
