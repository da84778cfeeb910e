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

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager    repository.TransactionManager
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	storage      service.ObjectStorage
	signTTL      time.Duration
	logger       *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	StoreRepo    repository.StoreRepository
	CategoryRepo repository.CategoryRepository
	Storage      service.ObjectStorage
	SignTTL      SignTTL
	Logger       *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:    params.TxManager,
		storeRepo:    params.StoreRepo,
		categoryRepo: params.CategoryRepo,
		storage:      params.Storage,
		signTTL:      time.Duration(params.SignTTL),
		logger:       params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create opens the caller's store in pending status. The one-store-per-
// owner rule rides on the unique index over user_id.
func (srv *storeService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.CreateStoreInput) (*usecase.StoreOutput, error) {
	if input.CategoryID != nil {
		if err := srv.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	store := &entity.Store{
		UserID:       ownerID,
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		IDCardNumber: input.IDCardNumber,
		Status:       entity.StatusPending,
	}

	var uploaded []string
	defer func() {
		// Uploads that never reached a committed row get removed.
		if store.ID == uuid.Nil {
			srv.deleteObjects(ctx, uploaded)
		}
	}()

	if input.Logo != nil {
		key, err := srv.upload(ctx, "stores/logos", input.Logo)
		if err != nil {
			return nil, err
		}
		store.LogoKey = key
		uploaded = append(uploaded, key)
	}
	if input.Cover != nil {
		key, err := srv.upload(ctx, "stores/covers", input.Cover)
		if err != nil {
			return nil, err
		}
		store.CoverKey = key
		uploaded = append(uploaded, key)
	}
	if input.IDCardImage != nil {
		key, err := srv.upload(ctx, "stores/id-cards", input.IDCardImage)
		if err != nil {
			return nil, err
		}
		store.IDCardImageKey = key
		uploaded = append(uploaded, key)
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrOwnerHasStore
		}

		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Info("Store created", slog.Any("storeID", store.ID), slog.Any("ownerID", ownerID))

	return srv.toOutput(ctx, store), nil
}

// GetMine resolves the caller's own store.
func (srv *storeService) GetMine(ctx context.Context, ownerID uuid.UUID) (*usecase.StoreOutput, error) {
	store, err := srv.storeRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return srv.toOutput(ctx, store), nil
}

func (srv *storeService) GetByID(ctx context.Context, id uuid.UUID) (*usecase.StoreOutput, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return srv.toOutput(ctx, store), nil
}

func (srv *storeService) GetAll(ctx context.Context) ([]*usecase.StoreOutput, error) {
	stores, err := srv.storeRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	outputs := make([]*usecase.StoreOutput, 0, len(stores))
	for _, store := range stores {
		outputs = append(outputs, srv.toOutput(ctx, store))
	}

	return outputs, nil
}

// Update applies the allow-listed fields to the caller's store. Replaced
// images are removed from storage best-effort after the row is saved.
func (srv *storeService) Update(ctx context.Context, ownerID uuid.UUID, input usecase.UpdateEntityInput) (*usecase.StoreOutput, error) {
	store, err := srv.storeRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Description != nil {
		store.Description = *input.Description
	}
	if input.CategoryID != nil {
		if err := srv.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		store.CategoryID = input.CategoryID
	}

	var replaced []string
	if input.Logo != nil {
		key, err := srv.upload(ctx, "stores/logos", input.Logo)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, store.LogoKey)
		store.LogoKey = key
	}
	if input.Cover != nil {
		key, err := srv.upload(ctx, "stores/covers", input.Cover)
		if err != nil {
			return nil, err
		}
		replaced = append(replaced, store.CoverKey)
		store.CoverKey = key
	}

	if err := srv.storeRepo.Update(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store")
	}

	srv.deleteObjects(ctx, replaced)

	return srv.toOutput(ctx, store), nil
}

// Delete removes the caller's store and every child record in one
// database transaction, then cleans up storage objects best-effort.
func (srv *storeService) Delete(ctx context.Context, ownerID uuid.UUID) error {
	store, err := srv.storeRepo.FindByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find store")
	}

	var orphanedKeys []string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		keys, err := cascadeDeleteStore(ctx, repoFactory, store)
		if err != nil {
			return err
		}
		orphanedKeys = keys

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute store deletion transaction")
	}

	srv.deleteObjects(ctx, orphanedKeys)

	srv.log(ctx).Info("Store deleted", slog.Any("storeID", store.ID), slog.Any("ownerID", ownerID))

	return nil
}

func (srv *storeService) checkCategory(ctx context.Context, id uuid.UUID) error {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrValidationFailed.WithDetails("unknown category")
		}

		return errors.Wrap(err, "failed to find category")
	}

	if category.Kind != entity.OwnerStore {
		return domainerrors.ErrValidationFailed.WithDetails("category is not a store category")
	}

	return nil
}

func (srv *storeService) upload(ctx context.Context, prefix string, file *usecase.FileUpload) (string, error) {
	key := buildObjectKey(prefix, file.Filename)
	if err := srv.storage.Upload(ctx, key, file.ContentType, file.Content); err != nil {
		srv.log(ctx).Error("Failed to upload store image", slog.String("key", key), slog.Any("error", err))

		return "", domainerrors.ErrStorageFailed
	}

	return key, nil
}

func (srv *storeService) deleteObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := srv.storage.Delete(ctx, key); err != nil {
			srv.log(ctx).Warn("Failed to delete stored object", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (srv *storeService) toOutput(ctx context.Context, store *entity.Store) *usecase.StoreOutput {
	output := &usecase.StoreOutput{
		ID:          store.ID,
		UserID:      store.UserID,
		Name:        store.Name,
		Description: store.Description,
		CategoryID:  store.CategoryID,
		Status:      string(store.Status),
		IsBlocked:   store.IsBlocked,
		IsSuspended: store.IsSuspended,
	}

	output.LogoURL = srv.signQuietly(ctx, store.LogoKey)
	output.CoverURL = srv.signQuietly(ctx, store.CoverKey)

	if store.CategoryID != nil {
		if category, err := srv.categoryRepo.FindByID(ctx, *store.CategoryID); err == nil {
			output.CategoryName = category.Name
		}
	}

	return output
}

func (srv *storeService) signQuietly(ctx context.Context, key string) string {
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
