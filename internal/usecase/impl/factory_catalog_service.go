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

// factoryCatalogService implements the FactoryCatalogUsecase interface.
type factoryCatalogService struct {
	factoryRepo         repository.FactoryRepository
	productRepo         repository.FactoryProductRepository
	productCategoryRepo repository.ProductCategoryRepository
	storage             service.ObjectStorage
	signTTL             time.Duration
	logger              *slog.Logger
}

// FactoryCatalogServiceParams holds dependencies for factoryCatalogService, injected by Fx.
type FactoryCatalogServiceParams struct {
	fx.In

	FactoryRepo         repository.FactoryRepository
	ProductRepo         repository.FactoryProductRepository
	ProductCategoryRepo repository.ProductCategoryRepository
	Storage             service.ObjectStorage
	SignTTL             SignTTL
	Logger              *slog.Logger
}

// NewFactoryCatalogService is the constructor for factoryCatalogService.
func NewFactoryCatalogService(params FactoryCatalogServiceParams) usecase.FactoryCatalogUsecase {
	return &factoryCatalogService{
		factoryRepo:         params.FactoryRepo,
		productRepo:         params.ProductRepo,
		productCategoryRepo: params.ProductCategoryRepo,
		storage:             params.Storage,
		signTTL:             time.Duration(params.SignTTL),
		logger:              params.Logger,
	}
}

func (srv *factoryCatalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *factoryCatalogService) resolveFactory(ctx context.Context, ownerID uuid.UUID) (*entity.Factory, error) {
	factory, err := srv.factoryRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	return factory, nil
}

// CreateProduct adds a wholesale product to the caller's factory in
// pending status.
func (srv *factoryCatalogService) CreateProduct(ctx context.Context, ownerID uuid.UUID, input usecase.FactoryProductInput) (*usecase.FactoryProductOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.UnitPrice < 0 || input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unit price and stock must not be negative")
	}
	if input.MinOrderQty < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("minimum order quantity must be at least 1")
	}

	if input.CategoryID != nil {
		if _, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerFactory, factory.ID, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrProductCategoryNotFound) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product category")
			}

			return nil, errors.Wrap(err, "failed to find product category")
		}
	}

	product := &entity.FactoryProduct{
		FactoryID:   factory.ID,
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		UnitPrice:   input.UnitPrice,
		MinOrderQty: input.MinOrderQty,
		Stock:       input.Stock,
		Status:      entity.StatusPending,
	}

	if input.Image != nil {
		key, err := srv.upload(ctx, "factory-products", input.Image)
		if err != nil {
			return nil, err
		}
		product.ImageKey = key
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create factory product")
	}

	srv.log(ctx).Info("Factory product created", slog.Any("productID", product.ID), slog.Any("factoryID", factory.ID))

	return srv.toProductOutput(ctx, product), nil
}

func (srv *factoryCatalogService) GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*usecase.FactoryProductOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByIDInFactory(ctx, factory.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory product")
	}

	return srv.toProductOutput(ctx, product), nil
}

func (srv *factoryCatalogService) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*usecase.FactoryProductOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products, err := srv.productRepo.FindByFactory(ctx, factory.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list factory products")
	}

	return srv.toProductOutputs(ctx, products), nil
}

func (srv *factoryCatalogService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input usecase.UpdateFactoryProductInput) (*usecase.FactoryProductOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByIDInFactory(ctx, factory.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		if _, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerFactory, factory.ID, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrProductCategoryNotFound) {
				return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product category")
			}

			return nil, errors.Wrap(err, "failed to find product category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unit price must not be negative")
		}
		product.UnitPrice = *input.UnitPrice
	}
	if input.MinOrderQty != nil {
		if *input.MinOrderQty < 1 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("minimum order quantity must be at least 1")
		}
		product.MinOrderQty = *input.MinOrderQty
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
		}
		product.Stock = *input.Stock
	}

	oldKey := ""
	if input.Image != nil {
		key, err := srv.upload(ctx, "factory-products", input.Image)
		if err != nil {
			return nil, err
		}
		oldKey = product.ImageKey
		product.ImageKey = key
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update factory product")
	}

	srv.deleteObjectQuietly(ctx, oldKey)

	return srv.toProductOutput(ctx, product), nil
}

func (srv *factoryCatalogService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return err
	}

	product, err := srv.productRepo.FindByIDInFactory(ctx, factory.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find factory product")
	}

	if err := srv.productRepo.Delete(ctx, product.ID); err != nil {
		return errors.Wrap(err, "failed to delete factory product")
	}

	srv.deleteObjectQuietly(ctx, product.ImageKey)

	return nil
}

// ListApprovedProducts is the wholesale browsing view for store owners.
func (srv *factoryCatalogService) ListApprovedProducts(ctx context.Context, factoryID uuid.UUID) ([]*usecase.FactoryProductOutput, error) {
	if _, err := srv.factoryRepo.FindByID(ctx, factoryID); err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	products, err := srv.productRepo.FindApprovedByFactory(ctx, factoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list approved products")
	}

	return srv.toProductOutputs(ctx, products), nil
}

// CreateCategory adds an owner-scoped product category.
func (srv *factoryCatalogService) CreateCategory(ctx context.Context, ownerID uuid.UUID, input usecase.ProductCategoryInput) (*usecase.ProductCategoryOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	category := &entity.ProductCategory{
		OwnerKind: entity.OwnerFactory,
		OwnerID:   factory.ID,
		Name:      input.Name,
	}

	if input.Logo != nil {
		key, err := srv.upload(ctx, "factory-product-categories", input.Logo)
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

func (srv *factoryCatalogService) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*usecase.ProductCategoryOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	categories, err := srv.productCategoryRepo.FindByOwner(ctx, entity.OwnerFactory, factory.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product categories")
	}

	outputs := make([]*usecase.ProductCategoryOutput, 0, len(categories))
	for _, category := range categories {
		outputs = append(outputs, srv.toCategoryOutput(ctx, category))
	}

	return outputs, nil
}

func (srv *factoryCatalogService) UpdateCategory(ctx context.Context, ownerID, categoryID uuid.UUID, input usecase.ProductCategoryInput) (*usecase.ProductCategoryOutput, error) {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	category, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerFactory, factory.ID, categoryID)
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
		key, err := srv.upload(ctx, "factory-product-categories", input.Logo)
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

func (srv *factoryCatalogService) DeleteCategory(ctx context.Context, ownerID, categoryID uuid.UUID) error {
	factory, err := srv.resolveFactory(ctx, ownerID)
	if err != nil {
		return err
	}

	category, err := srv.productCategoryRepo.FindByIDForOwner(ctx, entity.OwnerFactory, factory.ID, categoryID)
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

func (srv *factoryCatalogService) upload(ctx context.Context, prefix string, file *usecase.FileUpload) (string, error) {
	key := buildObjectKey(prefix, file.Filename)
	if err := srv.storage.Upload(ctx, key, file.ContentType, file.Content); err != nil {
		srv.log(ctx).Error("Failed to upload catalog image", slog.String("key", key), slog.Any("error", err))

		return "", domainerrors.ErrStorageFailed
	}

	return key, nil
}

func (srv *factoryCatalogService) deleteObjectQuietly(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := srv.storage.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
	}
}

func (srv *factoryCatalogService) signQuietly(ctx context.Context, key string) string {
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

func (srv *factoryCatalogService) toProductOutput(ctx context.Context, p *entity.FactoryProduct) *usecase.FactoryProductOutput {
	return &usecase.FactoryProductOutput{
		ID:          p.ID,
		FactoryID:   p.FactoryID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		UnitPrice:   p.UnitPrice,
		MinOrderQty: p.MinOrderQty,
		Stock:       p.Stock,
		ImageURL:    srv.signQuietly(ctx, p.ImageKey),
		Status:      string(p.Status),
	}
}

func (srv *factoryCatalogService) toProductOutputs(ctx context.Context, products []*entity.FactoryProduct) []*usecase.FactoryProductOutput {
	outputs := make([]*usecase.FactoryProductOutput, 0, len(products))
	for _, product := range products {
		outputs = append(outputs, srv.toProductOutput(ctx, product))
	}

	return outputs
}

func (srv *factoryCatalogService) toCategoryOutput(ctx context.Context, c *entity.ProductCategory) *usecase.ProductCategoryOutput {
	return &usecase.ProductCategoryOutput{
		ID:      c.ID,
		Name:    c.Name,
		LogoURL: srv.signQuietly(ctx, c.LogoKey),
	}
}
