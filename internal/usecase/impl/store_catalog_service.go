package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeCatalogService implements the StoreCatalogUsecase interface.
// Every operation resolves the caller's own store first; product and
// category lookups are scoped to it so foreign ids read as absent.
type storeCatalogService struct {
	storeRepo           repository.StoreRepository
	productRepo         repository.StoreProductRepository
	productCategoryRepo repository.ProductCategoryRepository
	storage             service.ObjectStorage
	signTTL             time.Duration
	logger              *slog.Logger
}

// StoreCatalogServiceParams holds dependencies for storeCatalogService, injected by Fx.
type StoreCatalogServiceParams struct {
	fx.In

	StoreRepo           repository.StoreRepository
	ProductRepo         repository.StoreProductRepository
	ProductCategoryRepo repository.ProductCategoryRepository
	Storage             service.ObjectStorage
	SignTTL             SignTTL
	Logger              *slog.Logger
}

// NewStoreCatalogService is the constructor for storeCatalogService.
func NewStoreCatalogService(params StoreCatalogServiceParams) usecase.StoreCatalogUsecase {
	return &storeCatalogService{
		storeRepo:           params.StoreRepo,
		productRepo:         params.ProductRepo,
		productCategoryRepo: params.ProductCategoryRepo,
		storage:             params.Storage,
		signTTL:             time.Duration(params.SignTTL),
		logger:              params.Logger,
	}
}

func (srv *storeCatalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *storeCatalogService) resolveStore(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return store, nil
}

// CreateProduct adds a product to the caller's store in pending status.
func (srv *storeCatalogService) CreateProduct(ctx context.Context, ownerID uuid.UUID, input usecase.StoreProductInput) (*usecase.StoreProductOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Price < 0 || input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price and stock must not be negative")
	}

	if input.CategoryID != nil {
		if _, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerStore, store.ID, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrProductCategoryNotFound) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product category")
			}

			return nil, errors.Wrap(err, "failed to find product category")
		}
	}

	product := &entity.StoreProduct{
		StoreID:     store.ID,
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		Status:      entity.StatusPending,
		IsActive:    true,
	}

	if input.Image != nil {
		key, err := srv.upload(ctx, "store-products", input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageKey = key
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create store product")
	}

	srv.log(ctx).Info("Store product created", slog.Any("productID", product.ID), slog.Any("storeID", store.ID))

	return srv.toProductOutput(ctx, product), nil
}

func (srv *storeCatalogService) GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*usecase.StoreProductOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByIDInStore(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store product")
	}

	return srv.toProductOutput(ctx, product), nil
}

func (srv *storeCatalogService) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*usecase.StoreProductOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products, err := srv.productRepo.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store products")
	}

	return srv.toProductOutputs(ctx, products), nil
}

// UpdateProduct applies partial updates to an owned product. A new
// image replaces the old one, which is removed best-effort.
func (srv *storeCatalogService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input usecase.UpdateStoreProductInput) (*usecase.StoreProductOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByIDInStore(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		if _, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerStore, store.ID, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrProductCategoryNotFound) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product category")
			}

			return nil, errors.Wrap(err, "failed to find product category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	oldKey := ""
	if input.Image != nil {
		key, err := srv.upload(ctx, "store-products", input.Image)
		if err != nil {
			return nil, err
		}
		oldKey = product.ImageKey
		product.ImageKey = key
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update store product")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	return srv.toProductOutput(ctx, product), nil
}

func (srv *storeCatalogService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return err
	}

	product, err := srv.productRepo.FindByIDInStore(ctx, store.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find store product")
	}

	if err := srv.productRepo.Delete(ctx, product.ID); err != nil {
		return errors.Wrap(err, "failed to delete store product")
	}

	srv.deleteObjectQuietly(ctx, product.ImageKey)

	return nil
}

// ListLiveProducts is the public storefront view.
func (srv *storeCatalogService) ListLiveProducts(ctx context.Context, storeID uuid.UUID) ([]*usecase.StoreProductOutput, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	products, err := srv.productRepo.FindLiveByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list live products")
	}

	return srv.toProductOutputs(ctx, products), nil
}

// CreateCategory adds an owner-scoped product category.
func (srv *storeCatalogService) CreateCategory(ctx context.Context, ownerID uuid.UUID, input usecase.ProductCategoryInput) (*usecase.ProductCategoryOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	category := &entity.ProductCategory{
		OwnerKind: entity.OwnerStore,
		OwnerID:   store.ID,
		Name:      input.Name,
	}

	if input.Logo != nil {
		key, err := srv.upload(ctx, "store-product-categories", input.Logo)
		if err != nil {
			return nil, err
		}
		category.LogoKey = key
	}

	if err := srv.productCategoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create product category")
	}

	return srv.toCategoryOutput(ctx, category), nil
}

func (srv *storeCatalogService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*usecase.ProductCategoryOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	categories, err := srv.productCategoryRepo.FindByOwner(ctx, entity.OwnerStore, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product categories")
	}

	outputs := make([]*usecase.ProductCategoryOutput, 0, len(categories))
	for _, category := range categories {
		outputs = append(outputs, srv.toCategoryOutput(ctx, category))
	}

	return outputs, nil
}

func (srv *storeCatalogService) UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, input usecase.ProductCategoryInput) (*usecase.ProductCategoryOutput, error) {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	category, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerStore, store.ID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrProductCategoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find product category")
	}

	if input.Name != "" {
		category.Name = input.Name
	}

	oldKey := ""
	if input.Logo != nil {
		key, err := srv.upload(ctx, "store-product-categories", input.Logo)
		if err != nil {
			return nil, err
		}
		oldKey = category.LogoKey
		category.LogoKey = key
	}

	if err := srv.productCategoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update product category")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	return srv.toCategoryOutput(ctx, category), nil
}

func (srv *storeCatalogService) DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	store, err := srv.resolveStore(ctx, ownerID)
	if err != nil {
		return err
	}

	category, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerStore, store.ID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrProductCategoryNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find product category")
	}

	if err := srv.productCategoryRepo.Delete(ctx, category.ID); err != nil {
		return errors.Wrap(err, "failed to delete product category")
	}

	srv.deleteObjectQuietly(ctx, category.LogoKey)

	return nil
}

func (srv *storeCatalogService) upload(ctx context.Context, prefix string, file *usecase.FileUpload) (string, error) {
	key := buildObjectKey(prefix, file.Filename)
	if err := srv.storage.Upload(ctx, key, file.ContentType, file.Content); err != nil {
		srv.log(ctx).Error("Failed to upload catalog image", slog.String("key", key), slog.Any("error", err))

		return "", domainerrors.ErrStorageFailed
	}

	return key, nil
}

func (srv *storeCatalogService) deleteObjectQuietly(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := srv.storage.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
	}
}

func (srv *storeCatalogService) signQuietly(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}

	url, err := srv.storage.SignedURL(ctx, key, srv.signTTL)
	if err != nil {
		srv.log(ctx).Warn("Failed to sign object url", slog.String("key", key), slog.Any("error", err))

		return ""
	}

	return url
}

func (srv *storeCatalogService) toProductOutput(ctx context.Context, p *entity.StoreProduct) *usecase.StoreProductOutput {
	return &usecase.StoreProductOutput{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    srv.signQuietly(ctx, p.ImageKey),
		Status:      string(p.Status),
		IsActive:    p.IsActive,
	}
}

func (srv *storeCatalogService) toProductOutputs(ctx context.Context, products []*entity.StoreProduct) []*usecase.StoreProductOutput {
	outputs := make([]*usecase.StoreProductOutput, 0, len(products))
	for _, product := range products {
		outputs = append(outputs, srv.toProductOutput(ctx, product))
	}

	return outputs
}

func (srv *storeCatalogService) toCategoryOutput(ctx context.Context, c *entity.ProductCategory) *usecase.ProductCategoryOutput {
	return &usecase.ProductCategoryOutput{
		ID:      c.ID,
		Name:    c.Name,
		LogoURL: srv.signQuietly(ctx, c.LogoKey),
	}
}
