package impl

import (
	"context"
	"regexp"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

func TestOrderService_CreateRetailOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)
	bowl, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Bowl",
		Price: 750,
		Stock: 4,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items: []usecase.OrderItemInput{
			{ProductID: mug.ID, Qty: 2, UnitPrice: 500},
			{ProductID: bowl.ID, Qty: 1, UnitPrice: 750},
		},
		Total:           1750,
		ShippingAddress: "12 Main St",
		Phone:           "0123456789",
	})
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, string(entity.OrderPending), order.Status)
	assert.Equal(t, string(entity.PaymentPending), order.PaymentStatus)
	assert.Equal(t, int64(1750), order.Total)
	require.Len(t, order.Items, 2)

	// Item names and prices are snapshotted from the catalog.
	assert.Equal(t, "Mug", order.Items[0].Name)
	assert.Equal(t, int64(500), order.Items[0].UnitPrice)
}

func TestOrderService_TotalMismatchPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	_, err = env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 2, UnitPrice: 500}},
		Total:   999,
	})
	assert.ErrorIs(t, err, domainerrors.ErrTotalMismatch)

	orders, err := env.orderRepo.FindByScope(ctx, entity.ScopeStore, storeID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CatalogPriceIsAuthoritative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	// A client quoting its own lower unit price cannot make the total
	// check pass; the catalog price drives the recomputed sum.
	_, err = env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 2, UnitPrice: 1}},
		Total:   2,
	})
	assert.ErrorIs(t, err, domainerrors.ErrTotalMismatch)
}

func TestOrderService_WholesaleMinOrderQty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	makerID := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	factoryID := env.createFactory(t, makerID, "Widget Works")

	widget, err := env.factoryCatalog.CreateProduct(ctx, makerID, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 50,
		Stock:       1000,
	})
	require.NoError(t, err)

	_, err = env.orders.Create(ctx, ownerID, entity.RoleStoreAdmin.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeFactory,
		ScopeID: factoryID,
		Items:   []usecase.OrderItemInput{{ProductID: widget.ID, Qty: 10, UnitPrice: 100}},
		Total:   1000,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	order, err := env.orders.Create(ctx, ownerID, entity.RoleStoreAdmin.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeFactory,
		ScopeID: factoryID,
		Items:   []usecase.OrderItemInput{{ProductID: widget.ID, Qty: 50, UnitPrice: 100}},
		Total:   5000,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ScopeFactory), order.Scope)
	assert.Equal(t, int64(5000), order.Total)
}

func TestOrderService_UnknownProductInScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	_, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: uuid.New(), Qty: 1, UnitPrice: 100}},
		Total:   100,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestOrderService_PayFlipsPaymentStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 2, UnitPrice: 500}},
		Total:   1000,
	})
	require.NoError(t, err)

	transaction, err := env.orders.Pay(ctx, buyerID, usecase.CreateTransactionInput{
		OrderID:    order.ID,
		CardHolder: "Buyer Name",
		CardNumber: "4111111111111111",
		CardExpiry: "12/27",
		CardCVC:    "123",
	})
	require.NoError(t, err)

	// Amount comes from the order, never the caller.
	assert.Equal(t, int64(1000), transaction.Amount)
	assert.Equal(t, string(entity.TransactionSuccessful), transaction.Status)

	paid, err := env.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentPaid), paid.PaymentStatus)

	// Paying twice conflicts.
	_, err = env.orders.Pay(ctx, buyerID, usecase.CreateTransactionInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestOrderService_PayRequiresOrderOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	strangerID := env.registerVerifiedUser(t, "stranger@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 1, UnitPrice: 500}},
		Total:   500,
	})
	require.NoError(t, err)

	_, err = env.orders.Pay(ctx, strangerID, usecase.CreateTransactionInput{OrderID: order.ID})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_UpdateStatusAndTracking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 1, UnitPrice: 500}},
		Total:   500,
	})
	require.NoError(t, err)

	tracking := "TRACK-42"
	updated, err := env.orders.UpdateStatus(ctx, ownerID, order.ID, usecase.UpdateOrderStatusInput{
		Status:     entity.OrderShipped,
		TrackingID: &tracking,
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderShipped), updated.Status)
	assert.Equal(t, "TRACK-42", updated.TrackingID)

	_, err = env.orders.UpdateStatus(ctx, ownerID, order.ID, usecase.UpdateOrderStatusInput{Status: "teleported"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_CreateScopeRoleGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	makerID := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	factoryID := env.createFactory(t, makerID, "Widget Works")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)
	widget, err := env.factoryCatalog.CreateProduct(ctx, makerID, usecase.FactoryProductInput{
		Name:        "Widget",
		UnitPrice:   100,
		MinOrderQty: 10,
		Stock:       1000,
	})
	require.NoError(t, err)

	// Retail orders are for buyers only.
	_, err = env.orders.Create(ctx, ownerID, entity.RoleStoreAdmin.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 1, UnitPrice: 500}},
		Total:   500,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Wholesale orders are for store owners only.
	_, err = env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeFactory,
		ScopeID: factoryID,
		Items:   []usecase.OrderItemInput{{ProductID: widget.ID, Qty: 10, UnitPrice: 100}},
		Total:   1000,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	orders, err := env.orderRepo.FindByScope(ctx, entity.ScopeStore, storeID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_ScopeListingsRequireOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	rivalID := env.registerVerifiedUser(t, "rival@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	env.createStore(t, rivalID, "Rival Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	order, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
		Scope:   entity.ScopeStore,
		ScopeID: storeID,
		Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 1, UnitPrice: 500}},
		Total:   500,
	})
	require.NoError(t, err)

	_, err = env.orders.Pay(ctx, buyerID, usecase.CreateTransactionInput{OrderID: order.ID})
	require.NoError(t, err)

	// Another store's owner cannot read this store's orders or payments,
	// whatever id the path carries.
	_, err = env.orders.ListByScope(ctx, rivalID, entity.ScopeStore, storeID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.orders.ListTransactions(ctx, rivalID, entity.ScopeStore, storeID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Nor move its orders through fulfillment.
	_, err = env.orders.UpdateStatus(ctx, rivalID, order.ID, usecase.UpdateOrderStatusInput{
		Status: entity.OrderShipped,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// A caller owning no store at all is rejected the same way.
	_, err = env.orders.ListByScope(ctx, buyerID, entity.ScopeStore, storeID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// The untouched order is still pending.
	got, err := env.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderPending), got.Status)
}

func TestOrderService_ListMineAndByScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	buyerID := env.registerVerifiedUser(t, "buyer@example.com", entity.RoleBuyer)
	storeID := env.createStore(t, ownerID, "Corner Shop")

	mug, err := env.storeCatalog.CreateProduct(ctx, ownerID, usecase.StoreProductInput{
		Name:  "Mug",
		Price: 500,
		Stock: 10,
	})
	require.NoError(t, err)

	for range 3 {
		_, err := env.orders.Create(ctx, buyerID, entity.RoleBuyer.String(), usecase.CreateOrderInput{
			Scope:   entity.ScopeStore,
			ScopeID: storeID,
			Items:   []usecase.OrderItemInput{{ProductID: mug.ID, Qty: 1, UnitPrice: 500}},
			Total:   500,
		})
		require.NoError(t, err)
	}

	mine, err := env.orders.ListMine(ctx, buyerID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	scoped, err := env.orders.ListByScope(ctx, ownerID, entity.ScopeStore, storeID)
	require.NoError(t, err)
	assert.Len(t, scoped, 3)

	// Order numbers are distinct.
	seen := make(map[string]bool)
	for _, o := range scoped {
		assert.False(t, seen[o.OrderNumber])
		seen[o.OrderNumber] = true
	}
}
