package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStoreInput defines the data required to open a store.
type CreateStoreInput struct {
	Name         string
	Description  string
	CategoryID   *uuid.UUID
	IDCardNumber string

	Logo        *FileUpload
	Cover       *FileUpload
	IDCardImage *FileUpload
}

// CreateFactoryInput defines the data required to open a factory.
type CreateFactoryInput struct {
	Name          string
	Description   string
	CategoryID    *uuid.UUID
	LicenseNumber string

	Logo         *FileUpload
	Cover        *FileUpload
	LicenseImage *FileUpload
}

// UpdateEntityInput carries the allow-listed fields for store and
// factory updates. Nil pointers leave the current value untouched.
type UpdateEntityInput struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID

	Logo  *FileUpload
	Cover *FileUpload
}

// StoreOutput is the client projection of a store. Image fields carry
// signed display URLs, never raw storage keys.
type StoreOutput struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	LogoURL      string     `json:"logoUrl,omitempty"`
	CoverURL     string     `json:"coverUrl,omitempty"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	Status       string     `json:"status"`
	IsBlocked    bool       `json:"isBlocked"`
	IsSuspended  bool       `json:"isSuspended"`
}

// FactoryOutput is the client projection of a factory.
type FactoryOutput struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	LogoURL      string     `json:"logoUrl,omitempty"`
	CoverURL     string     `json:"coverUrl,omitempty"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	Status       string     `json:"status"`
	IsBlocked    bool       `json:"isBlocked"`
	IsSuspended  bool       `json:"isSuspended"`
}

// StoreUsecase manages the store lifecycle. Delete cascades through
// every child collection inside one database transaction.
type StoreUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreOutput, error)
	GetMine(ctx context.Context, ownerID uuid.UUID) (*StoreOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreOutput, error)
	GetAll(ctx context.Context) ([]*StoreOutput, error)
	Update(ctx context.Context, ownerID uuid.UUID, input UpdateEntityInput) (*StoreOutput, error)
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// FactoryUsecase mirrors StoreUsecase for factories.
type FactoryUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateFactoryInput) (*FactoryOutput, error)
	GetMine(ctx context.Context, ownerID uuid.UUID) (*FactoryOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FactoryOutput, error)
	GetAll(ctx context.Context) ([]*FactoryOutput, error)
	Update(ctx context.Context, ownerID uuid.UUID, input UpdateEntityInput) (*FactoryOutput, error)
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// CategoryInput defines the data for a global category.
type CategoryInput struct {
	Name string
	Kind entity.OwnerKind
}

// CategoryOutput is the client projection of a global category.
type CategoryOutput struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind string    `json:"kind"`
}

// CategoryUsecase manages the global, admin-curated categories.
type CategoryUsecase interface {
	Create(ctx context.Context, input CategoryInput) (*CategoryOutput, error)
	GetAll(ctx context.Context, kind entity.OwnerKind) ([]*CategoryOutput, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*CategoryOutput, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
