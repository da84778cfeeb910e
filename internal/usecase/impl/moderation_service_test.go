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

func TestModerationService_VerifyStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	action, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionVerifyStore,
		TargetID: storeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "verify-store", action.Action)
	assert.Equal(t, "stores", action.TargetTable)
	assert.Equal(t, "Store verified", action.Notes)

	store, err := env.storeRepo.FindByID(ctx, storeID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusLive, store.Status)
}

func TestModerationService_FactoryUsesApprovedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	makerID := env.registerVerifiedUser(t, "maker@example.com", entity.RoleFactoryAdmin)
	factoryID := env.createFactory(t, makerID, "Widget Works")
	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	_, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionVerifyFactory,
		TargetID: factoryID,
	})
	require.NoError(t, err)

	factory, err := env.factoryRepo.FindByID(ctx, factoryID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, factory.Status)
}

func TestModerationService_SuspendAndBlockFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	_, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionSuspendStore,
		TargetID: storeID,
	})
	require.NoError(t, err)

	_, err = env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionBlockStore,
		TargetID: storeID,
		Notes:    "Fraud report",
	})
	require.NoError(t, err)

	store, err := env.storeRepo.FindByID(ctx, storeID)
	require.NoError(t, err)
	assert.True(t, store.IsSuspended)
	assert.True(t, store.IsBlocked)

	// Flags are independent of the moderation status.
	assert.Equal(t, entity.StatusPending, store.Status)
}

func TestModerationService_AuditTrailAppendOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	// Repeating a verb appends a fresh record each time.
	for range 2 {
		_, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
			Action:   entity.ActionVerifyStore,
			TargetID: storeID,
		})
		require.NoError(t, err)
	}

	actions, err := env.moderation.ListActionsForTarget(ctx, "stores", storeID)
	require.NoError(t, err)
	assert.Len(t, actions, 2)

	all, err := env.moderation.ListActions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestModerationService_CustomNotesKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID := env.registerVerifiedUser(t, "owner@example.com", entity.RoleStoreAdmin)
	storeID := env.createStore(t, ownerID, "Corner Shop")
	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	action, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionRejectStore,
		TargetID: storeID,
		Notes:    "Missing id card scan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Missing id card scan", action.Notes)
}

func TestModerationService_UnknownTargetWritesNoAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	_, err := env.moderation.Apply(ctx, adminID, usecase.ModerationInput{
		Action:   entity.ActionVerifyStore,
		TargetID: uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// The transaction rolled back; no orphan audit row.
	actions, err := env.moderation.ListActions(ctx)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestModerationService_UnknownVerbRejected(t *testing.T) {
	env := newTestEnv(t)

	adminID := registerVerifiedAdmin(t, env, "admin@example.com")

	_, err := env.moderation.Apply(context.Background(), adminID, usecase.ModerationInput{
		Action:   "promote-store",
		TargetID: uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
