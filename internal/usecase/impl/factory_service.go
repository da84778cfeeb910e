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

// factoryService implements the FactoryUsecase interface.
type factoryService struct {
	txManager    repository.TransactionManager
	factoryRepo  repository.FactoryRepository
	categoryRepo repository.CategoryRepository
	storage      service.ObjectStorage
	signTTL      time.Duration
	logger       *slog.Logger
}

// FactoryServiceParams holds dependencies for factoryService, injected by Fx.
type FactoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	FactoryRepo  repository.FactoryRepository
	CategoryRepo repository.CategoryRepository
	Storage      service.ObjectStorage
	SignTTL      SignTTL
	Logger       *slog.Logger
}

// NewFactoryService is the constructor for factoryService.
func NewFactoryService(params FactoryServiceParams) usecase.FactoryUsecase {
	return &factoryService{
		txManager:    params.TxManager,
		factoryRepo:  params.FactoryRepo,
		categoryRepo: params.CategoryRepo,
		storage:      params.Storage,
		signTTL:      time.Duration(params.SignTTL),
		logger:       params.Logger,
	}
}

func (srv *factoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create opens the caller's factory in pending status.
func (srv *factoryService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.CreateFactoryInput) (*usecase.FactoryOutput, error) {
	if input.CategoryID != nil {
		if err := srv.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	factory := &entity.Factory{
		UserID:        ownerID,
		Name:          input.Name,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		LicenseNumber: input.LicenseNumber,
		Status:        entity.StatusPending,
	}

	var uploaded []string
	defer func() {
		if factory.ID == uuid.Nil {
			srv.deleteObjects(ctx, uploaded)
		}
	}()

	if input.Logo != nil {
		key, err := srv.upload(ctx, "factories/logos", input.Logo)
		if err != nil {
			return nil, err
		}
		factory.LogoKey = key
		uploaded = append(uploaded, key)
	}
	if input.Cover != nil {
		key, err := srv.upload(ctx, "factories/covers", input.Cover)
		if err != nil {
			return nil, err
		}
		factory.CoverKey = key
		uploaded = append(uploaded, key)
	}
	if input.LicenseImage != nil {
		key, err := srv.upload(ctx, "factories/licenses", input.LicenseImage)
		if err != nil {
			return nil, err
		}
		factory.LicenseImageKey = key
		uploaded = append(uploaded, key)
	}

	if err := srv.factoryRepo.Create(ctx, factory); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrOwnerHasFactory
		}

		return nil, errors.Wrap(err, "failed to create factory")
	}

	srv.log(ctx).Info("Factory created", slog.Any("factoryID", factory.ID), slog.Any("ownerID", ownerID))

	return srv.toOutput(ctx, factory), nil
}

// GetMine resolves the caller's own factory.
func (srv *factoryService) GetMine(ctx context.Context, ownerID uuid.UUID) (*usecase.FactoryOutput, error) {
	factory, err := srv.factoryRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	return srv.toOutput(ctx, factory), nil
}

func (srv *factoryService) GetByID(ctx context.Context, id uuid.UUID) (*usecase.FactoryOutput, error) {
	factory, err := srv.factoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	return srv.toOutput(ctx, factory), nil
}

func (srv *factoryService) GetAll(ctx context.Context) ([]*usecase.FactoryOutput, error) {
	factories, err := srv.factoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list factories")
	}

	outputs := make([]*usecase.FactoryOutput, 0, len(factories))
	for _, factory := range factories {
		outputs = append(outputs, srv.toOutput(ctx, factory))
	}

	return outputs, nil
}

// Update applies the allow-listed fields to the caller's factory.
func (srv *factoryService) Update(ctx context.Context, ownerID uuid.UUID, input usecase.UpdateEntityInput) (*usecase.FactoryOutput, error) {
	factory, err := srv.factoryRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find factory")
	}

	if input.Name != nil {
		factory.Name = *input.Name
	}
	if input.Description != nil {
		factory.Description = *input.Description
	}
	if input.CategoryID != nil {
		if err := srv.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		factory.CategoryID = input.CategoryID
	}

	var replaced []string
	if input.Logo != nil {
		key, err := srv.upload(ctx, "factories/logos", input.Logo)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, factory.LogoKey)
		factory.LogoKey = key
	}
	if input.Cover != nil {
		key, err := srv.upload(ctx, "factories/covers", input.Cover)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, factory.CoverKey)
		factory.CoverKey = key
	}

	if err := srv.factoryRepo.Update(ctx, factory); err != nil {
		return nil, errors.Wrap(err, "failed to update factory")
	}

	srv.deleteObjects(ctx, replaced)

	return srv.toOutput(ctx, factory), nil
}

// Delete removes the caller's factory and every child record in one
// database transaction, then cleans up storage objects best-effort.
func (srv *factoryService) Delete(ctx context.Context, ownerID uuid.UUID) error {
	factory, err := srv.factoryRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find factory")
	}

	var orphanedKeys []string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		keys, err := cascadeDeleteFactory(ctx, repoFactory, factory)
		if err != nil {
			return err
		}
		orphanedKeys = keys

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute factory deletion transaction")
	}

	srv.deleteObjects(ctx, orphanedKeys)

	srv.log(ctx).Info("Factory deleted", slog.Any("factoryID", factory.ID), slog.Any("ownerID", ownerID))

	return nil
}

func (srv *factoryService) checkCategory(ctx context.Context, id uuid.UUID) error {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrValidationFailed.WithDetails("unknown category")
		}

		return errors.Wrap(err, "failed to find category")
	}

	if category.Kind != entity.OwnerFactory {
		return domainerrors.ErrValidationFailed.WithDetails("category is not a factory category")
	}

	return nil
}

func (srv *factoryService) upload(ctx context.Context, prefix string, file *usecase.FileUpload) (string, error) {
	key := buildObjectKey(prefix, file.Filename)
	if err := srv.storage.Upload(ctx, key, file.ContentType, file.Content); err != nil {
		srv.log(ctx).Error("Failed to upload factory image", slog.String("key", key), slog.Any("error", err))

		return "", domainerrors.ErrStorageFailed
	}

	return key, nil
}

func (srv *factoryService) deleteObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := srv.storage.Delete(ctx, key); err != nil {
			srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (srv *factoryService) toOutput(ctx context.Context, factory *entity.Factory) *usecase.FactoryOutput {
	output := &usecase.FactoryOutput{
		ID:          factory.ID,
		UserID:      factory.UserID,
		Name:        factory.Name,
		Description: factory.Description,
		CategoryID:  factory.CategoryID,
		Status:      string(factory.Status),
		IsBlocked:   factory.IsBlocked,
		IsSuspended: factory.IsSuspended,
	}

	output.LogoURL = srv.signQuietly(ctx, factory.LogoKey)
	output.CoverURL = srv.signQuietly(ctx, factory.CoverKey)

	if factory.CategoryID != nil {
		if category, err := srv.categoryRepo.FindByID(ctx, *factory.CategoryID); err == nil {
			output.CategoryName = category.Name
		}
	}

	return output
}

func (srv *factoryService) signQuietly(ctx context.Context, key string) string {
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
