package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"time"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SignTTL is the lifetime of signed object URLs, as a named type so Fx
// can inject it alongside other durations.
type SignTTL time.Duration

// buildObjectKey derives a collision-free storage key under the given
// prefix, keeping the upload's file extension.
func buildObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), path.Ext(filename))
}

const orderNumberDigits = 6

// newOrderNumber builds an ORD-YYYYMMDD-XXXXXX identifier. Uniqueness
// is ultimately guaranteed by the orders.order_number unique index.
func newOrderNumber(now time.Time) (string, error) {
	max := big.NewInt(1)
	for range orderNumberDigits {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", errors.Wrap(err, "failed to draw order number suffix")
	}

	return fmt.Sprintf("ORD-%s-%0*d", now.Format("20060102"), orderNumberDigits, n), nil
}

// cascadeDeleteStore removes a store and every record under it inside
// the caller's transaction. It returns the object storage keys the rows
// referenced so the caller can clean up blobs after commit.
func cascadeDeleteStore(ctx context.Context, repoFactory repository.RepositoryFactory, store *entity.Store) ([]string, error) {
	keys := []string{store.LogoKey, store.CoverKey, store.IDCardImageKey}

	products, err := repoFactory.NewStoreProductRepository().FindByStore(ctx, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store products")
	}
	for _, product := range products {
		keys = append(keys, product.ImageKey)
	}

	categories, err := repoFactory.NewProductCategoryRepository().FindByOwner(ctx, entity.OwnerStore, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product categories")
	}
	for _, category := range categories {
		keys = append(keys, category.LogoKey)
	}

	feedbacks, err := repoFactory.NewFeedbackRepository().FindByScope(ctx, store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}
	for _, feedback := range feedbacks {
		keys = append(keys, feedback.ImageKey)
	}

	if err := repoFactory.NewReviewRepository().DeleteByScope(ctx, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete reviews")
	}
	if err := repoFactory.NewFeedbackRepository().DeleteByScope(ctx, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete feedback")
	}
	if err := repoFactory.NewPaymentTransactionRepository().DeleteByScope(ctx, entity.ScopeStore, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete transactions")
	}
	if err := repoFactory.NewOrderRepository().DeleteByScope(ctx, entity.ScopeStore, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete orders")
	}
	if err := repoFactory.NewStoreProductRepository().DeleteByStore(ctx, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete store products")
	}
	if err := repoFactory.NewProductCategoryRepository().DeleteByOwner(ctx, entity.OwnerStore, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete product categories")
	}
	if err := repoFactory.NewStoreRepository().Delete(ctx, store.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete store")
	}

	return keys, nil
}

// cascadeDeleteFactory mirrors cascadeDeleteStore for factories.
func cascadeDeleteFactory(ctx context.Context, repoFactory repository.RepositoryFactory, factory *entity.Factory) ([]string, error) {
	keys := []string{factory.LogoKey, factory.CoverKey, factory.LicenseImageKey}

	products, err := repoFactory.NewFactoryProductRepository().FindByFactory(ctx, factory.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list factory products")
	}
	for _, product := range products {
		keys = append(keys, product.ImageKey)
	}

	categories, err := repoFactory.NewProductCategoryRepository().FindByOwner(ctx, entity.OwnerFactory, factory.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product categories")
	}
	for _, category := range categories {
		keys = append(keys, category.LogoKey)
	}

	feedbacks, err := repoFactory.NewFeedbackRepository().FindByScope(ctx, factory.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list feedback")
	}
	for _, feedback := range feedbacks {
		keys = append(keys, feedback.ImageKey)
	}

	if err := repoFactory.NewReviewRepository().DeleteByScope(ctx, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete reviews")
	}
	if err := repoFactory.NewFeedbackRepository().DeleteByScope(ctx, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete feedback")
	}
	if err := repoFactory.NewPaymentTransactionRepository().DeleteByScope(ctx, entity.ScopeFactory, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete transactions")
	}
	if err := repoFactory.NewOrderRepository().DeleteByScope(ctx, entity.ScopeFactory, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete orders")
	}
	if err := repoFactory.NewFactoryProductRepository().DeleteByFactory(ctx, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete factory products")
	}
	if err := repoFactory.NewProductCategoryRepository().DeleteByOwner(ctx, entity.OwnerFactory, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete product categories")
	}
	if err := repoFactory.NewFactoryRepository().Delete(ctx, factory.ID); err != nil {
		return nil, errors.Wrap(err, "failed to delete factory")
	}

	return keys, nil
}
