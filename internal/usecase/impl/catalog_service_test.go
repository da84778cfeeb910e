package impl

import (
	"context"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCatalog_CreateAndListProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	env.createStore(t, ownerID, "Corner Shop")

	out, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:        "Mug",
		Description: "Ceramic",
		Price:       500,
		Stock:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPending), out.Status)
	assert.True(t, out.IsActive)

	products, err := env.storeCatalog.ListProducts(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
}

func TestStoreCatalog_ForeignProductReadsAsAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerA := env.registerVerifiedUser(t, "a@example.com", entity.RoleStoreAdmin)
	ownerB := env.registerVerifiedUser(t, "b@example.com", entity.RoleStoreAdmin)
	env.createStore(t, ownerA, "Shop A")
	env.createStore(t, ownerB, "Shop B")

	product, err := env.storeCatalog.CreateProduct(ctx, ownerA, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	// Owner B cannot see, update, or delete A's product.
	_, err = env.storeCatalog.GetProduct(ctx, ownerB, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	name := "Hijacked"
	_, err = env.storeCatalog.UpdateProduct(ctx, ownerB, product.ID, usecase.UpdateStoreProductInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = env.storeCatalog.DeleteProduct(ctx, ownerB, product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// The owner still can.
	got, err := env.storeCatalog.GetProduct(ctx, ownerA, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", got.Name)
}

func TestStoreCatalog_ListLiveProductsFiltersModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	pending, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Pending Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	approved, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Live Mug",
		Price: 700,
		Stock: 5,
	})
	require.NoError(t, err)

	adminID := registerVerifiedAdmin(t, env, "admin@example.com")
	_, err = env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionVerifyStoreProduct,
		TargetID: approved.ID,
	})
	require.NoError(t, err)

	live, err := env.storeCatalog.ListLiveProducts(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, approved.ID, live[0].ID)
	assert.NotEqual(t, pending.ID, live[0].ID)
}

func TestStoreCatalog_ProductCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	env.createStore(t, ownerID, "Corner Shop")

	category, err := env.storeCatalog.CreateCategory(ctx, ownerID, usecase.ProductCategoryInput{Name: "Kitchen"})
	require.NoError(t, err)

	// A product can join an owned category.
	out, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:       "Mug",
		Price:      500,
		Stock:      10,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, out.CategoryID)
	assert.Equal(t, category.ID, *out.CategoryID)

	// A foreign owner's category does not exist from here.
	otherID := env.registerVerifiedUser(t, "other@example.com", entity.RoleStoreAdmin)
	env.createStore(t, otherID, "Other Shop")
	_, err = env.storeCatalog.CreateProduct(ctx, otherID, usecase.StoreProductInput{
		Name:       "Bowl",
		Price:      300,
		Stock:      3,
		CategoryID: &category.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	categories, err := env.storeCatalog.ListCategories(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Kitchen", categories[0].Name)
}

func TestFactoryCatalog_MinOrderQtyValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	env.createFactory(t, ownerID, "Widget Works")

	_, err := env.factoryCatalog.CreateProduct(ctx, ownerID, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 0,
		Stock:       1000,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	out, err := env.factoryCatalog.CreateProduct(ctx, ownerID, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 50,
		Stock:       1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, out.MinOrderQty)
}

func TestFactoryCatalog_ListApprovedProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	factoryID := env.createFactory(t, ownerID, "Widget Works")

	product, err := env.factoryCatalog.CreateProduct(ctx, ownerID, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 10,
		Stock:       1000,
	})
	require.NoError(t, err)

	approved, err := env.factoryCatalog.ListApprovedProducts(ctx, factoryID)
	require.NoError(t, err)
	assert.Empty(t, approved)

	adminID := registerVerifiedAdmin(t, env, "admin@example.com")
	_, err = env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionVerifyFactoryProduct,
		TargetID: product.ID,
	})
	require.NoError(t, err)

	approved, err = env.factoryCatalog.ListApprovedProducts(ctx, factoryID)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, product.ID, approved[0].ID)
}
