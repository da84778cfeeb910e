package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// ErrFactoryNotFound is returned when a factory is not found.
var ErrFactoryNotFound = errors.New("factory not found")

// StoreRepository defines the standard operations for store persistence.
// The one-store-per-user rule is a unique index on user_id; Create
// surfaces a violation as a duplicate-key error for the usecase to map.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindByUserID resolves the store owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Store, error)

	FindAll(ctx context.Context) ([]*entity.Store, error)
	Create(ctx context.Context, store *entity.Store) error
	Update(ctx context.Context, store *entity.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FactoryRepository mirrors StoreRepository for factories.
type FactoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Factory, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Factory, error)
	FindAll(ctx context.Context) ([]*entity.Factory, error)
	Create(ctx context.Context, factory *entity.Factory) error
	Update(ctx context.Context, factory *entity.Factory) error
	Delete(ctx context.Context, id uuid.UUID) error
}
