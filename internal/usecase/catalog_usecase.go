package usecase

import (
	"context"

	"github.com/google/uuid"
)

// StoreProductInput defines the data for creating a retail product.
type StoreProductInput struct {
	Name        string
	Description string
	CategoryID  *uuid.UUID
	Price       int64
	Stock       int
	Image       *FileUpload
}

// UpdateStoreProductInput carries partial updates. Nil pointers leave
// the current value untouched.
type UpdateStoreProductInput struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	Price       *int64
	Stock       *int
	IsActive    *bool
	Image       *FileUpload
}

// FactoryProductInput defines the data for creating a wholesale product.
type FactoryProductInput struct {
	Name        string
	Description string
	CategoryID  *uuid.UUID
	UnitPrice   int64
	MinOrderQty int
	Stock       int
	Image       *FileUpload
}

// UpdateFactoryProductInput carries partial updates.
type UpdateFactoryProductInput struct {
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	UnitPrice   *int64
	MinOrderQty *int
	Stock       *int
	Image       *FileUpload
}

// StoreProductOutput is the client projection of a retail product.
type StoreProductOutput struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"storeId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Price       int64      `json:"price"`
	Stock       int        `json:"stock"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Status      string     `json:"status"`
	IsActive    bool       `json:"isActive"`
}

// FactoryProductOutput is the client projection of a wholesale product.
type FactoryProductOutput struct {
	ID          uuid.UUID  `json:"id"`
	FactoryID   uuid.UUID  `json:"factoryId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	UnitPrice   int64      `json:"unitPrice"`
	MinOrderQty int        `json:"minOrderQty"`
	Stock       int        `json:"stock"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Status      string     `json:"status"`
}

// ProductCategoryInput defines the data for an owner-scoped category.
type ProductCategoryInput struct {
	Name string
	Logo *FileUpload
}

// ProductCategoryOutput is the client projection of an owner-scoped category.
type ProductCategoryOutput struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL string    `json:"logoUrl,omitempty"`
}

// StoreCatalogUsecase manages a store's products and product
// categories. Every operation resolves the caller's own store first and
// scopes all queries by it; foreign ids surface as NotFound.
type StoreCatalogUsecase interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input StoreProductInput) (*StoreProductOutput, error)
	GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*StoreProductOutput, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*StoreProductOutput, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateStoreProductInput) (*StoreProductOutput, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error

	// ListLiveProducts is the public storefront view, no auth required.
	ListLiveProducts(ctx context.Context, storeID uuid.UUID) ([]*StoreProductOutput, error)

	CreateCategory(ctx context.Context, ownerID uuid.UUID, input ProductCategoryInput) (*ProductCategoryOutput, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*ProductCategoryOutput, error)
	UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, input ProductCategoryInput) (*ProductCategoryOutput, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error
}

// FactoryCatalogUsecase mirrors StoreCatalogUsecase for the wholesale catalog.
type FactoryCatalogUsecase interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, input FactoryProductInput) (*FactoryProductOutput, error)
	GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*FactoryProductOutput, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*FactoryProductOutput, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input UpdateFactoryProductInput) (*FactoryProductOutput, error)
	DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error

	ListApprovedProducts(ctx context.Context, factoryID uuid.UUID) ([]*FactoryProductOutput, error)

	CreateCategory(ctx context.Context, ownerID uuid.UUID, input ProductCategoryInput) (*ProductCategoryOutput, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*ProductCategoryOutput, error)
	UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, input ProductCategoryInput) (*ProductCategoryOutput, error)
	DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error
}
