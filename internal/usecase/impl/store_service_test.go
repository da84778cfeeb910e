package impl

import (
	"context"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreService_CreateStartsPending(t *testing.T) {
	env := newTestEnv(t)

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)

	out, err := env.stores.Create(context.Background(), ownerID, usecase.CreateStoreInput{
		Name:         "Corner Shop",
		Description:  "Sundries",
		IDCardNumber: "ID-9876",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.Equal(t, ownerID, out.UserID)
	assert.False(t, out.IsBlocked)
	assert.False(t, out.IsSuspended)
}

func TestStoreService_OneStorePerOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	env.createStore(t, ownerID, "First Shop")

	_, err := env.stores.Create(ctx, ownerID, usecase.CreateStoreInput{
		Name:         "Second Shop",
		IDCardNumber: "ID-0001",
	})
	assert.ErrorIs(t, err, domainerrors.ErrOwnerHasStore)
}

func TestStoreService_CategoryKindChecked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)

	factoryCat, err := env.categories.Create(ctx, usecase.CategoryInput{
		Name: "Textiles",
		Kind: entity.OwnerFactory,
	})
	require.NoError(t, err)

	// A factory-kind category cannot classify a store.
	_, err = env.stores.Create(ctx, ownerID, usecase.CreateStoreInput{
		Name:         "Corner Shop",
		IDCardNumber: "ID-9876",
		CategoryID:   &factoryCat.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	storeCat, err := env.categories.Create(ctx, usecase.CategoryInput{
		Name: "Groceries",
		Kind: entity.OwnerStore,
	})
	require.NoError(t, err)

	out, err := env.stores.Create(ctx, ownerID, usecase.CreateStoreInput{
		Name:         "Corner Shop",
		IDCardNumber: "ID-9876",
		CategoryID:   &storeCat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", out.CategoryName)
}

func TestStoreService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	env.createStore(t, ownerID, "Corner Shop")

	name := "Corner Shop Deluxe"
	out, err := env.stores.Update(ctx, ownerID, usecase.UpdateEntityInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Corner Shop Deluxe", out.Name)

	// Updating without a store yields not found.
	strayID := env.registerVerifiedUser(t, "stray@example.com", entity.RoleStoreAdmin)
	_, err = env.stores.Update(ctx, strayID, usecase.UpdateEntityInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestStoreService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	category, err := env.storeCatalog.CreateCategory(ctx, ownerID, usecase.ProductCategoryInput{Name: "Kitchen"})
	require.NoError(t, err)

	review, err := env.social.CreateReview(ctx, buyerID, "buyer", usecase.CreateReviewInput{
		ProductKind: entity.ProductStore,
		ProductID:   product.ID,
		Rating:      4,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: product.ID, Qty: 2, UnitPrice: 500}},
		Total:   1000,
	})
	require.NoError(t, err)

	require.NoError(t, env.stores.Delete(ctx, ownerID))

	_, err = env.storeRepo.FindByID(ctx, storeID)
	assert.ErrorIs(t, err, repository.ErrStoreNotFound)
	_, err = env.storeProductRepo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	_, err = env.reviewRepo.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
	_, err = env.orderRepo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	_, err = env.productCategoryRepo.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, repository.ErrProductCategoryNotFound)

	// The owning account survives; only the store subtree is gone.
	_, err = env.userRepo.FindByID(ctx, ownerID)
	require.NoError(t, err)
}
