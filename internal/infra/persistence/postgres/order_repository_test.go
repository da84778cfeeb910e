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

func TestOrderRepository_CreateWithItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &entity.Order{
		OrderNumber:   "ORD-20260830-000001",
		Scope:         entity.ScopeStore,
		ScopeID:       uuid.New(),
		UserID:        uuid.New(),
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPending,
		Total:         5500,
		Items: []entity.OrderItem{
			{ProductID: uuid.New(), Name: "Mug", Qty: 2, UnitPrice: 1500},
			{ProductID: uuid.New(), Name: "Plate", Qty: 1, UnitPrice: 2500},
		},
	}
	require.NoError(t, repo.Create(ctx, order))
	require.NotEmpty(t, order.ID)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 2)
	assert.Equal(t, int64(5500), found.ItemsTotal())
	assert.Equal(t, entity.OrderPending, found.Status)
	assert.Equal(t, entity.PaymentPending, found.PaymentStatus)
}

func TestOrderRepository_DuplicateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	first := &entity.Order{
		OrderNumber: "ORD-20260830-AAAAAA",
		Scope:       entity.ScopeStore,
		ScopeID:     uuid.New(),
		UserID:      uuid.New(),
		Status:      entity.OrderPending,
		Total:       100,
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &entity.Order{
		OrderNumber: "ORD-20260830-AAAAAA",
		Scope:       entity.ScopeFactory,
		ScopeID:     uuid.New(),
		UserID:      uuid.New(),
		Status:      entity.OrderPending,
		Total:       200,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateKey)
}

func TestOrderRepository_DeleteByScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	scopeID := uuid.New()
	for i := range 2 {
		order := &entity.Order{
			OrderNumber: "ORD-20260830-SCOPE" + string(rune('A'+i)),
			Scope:       entity.ScopeStore,
			ScopeID:     scopeID,
			UserID:      uuid.New(),
			Status:      entity.OrderPending,
			Total:       1000,
			Items: []entity.OrderItem{
				{ProductID: uuid.New(), Name: "Item", Qty: 1, UnitPrice: 1000},
			},
		}
		require.NoError(t, repo.Create(ctx, order))
	}

	require.NoError(t, repo.DeleteByScope(ctx, entity.ScopeStore, scopeID))

	orders, err := repo.FindByScope(ctx, entity.ScopeStore, scopeID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	boom := assert.AnError
	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user := &entity.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x", Role: entity.RoleBuyer}
		if err := factory.NewUserRepository().Create(ctx, user); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewUserRepository(db).FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_CommitOnSuccess(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user := &entity.User{Name: "Real", Email: "real@example.com", PasswordHash: "x", Role: entity.RoleBuyer}

		return factory.NewUserRepository().Create(ctx, user)
	})
	require.NoError(t, err)

	found, err := NewUserRepository(db).FindByEmail(ctx, "real@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Real", found.Name)
}
