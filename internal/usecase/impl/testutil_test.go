package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bazar/config"
	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/infra/auth"
	"bazar/internal/infra/persistence/model"
	"bazar/internal/infra/persistence/postgres"
	infrastorage "bazar/internal/infra/storage"
	"bazar/internal/usecase"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"gorm.io/gorm"
)

var testDBCounter atomic.Int64

// testEnv wires the services under test against an in-memory SQLite
// database, an in-memory bucket, and a recording mailer. Only external
// transports are faked; repositories, hashing and tokens are real.
type testEnv struct {
	db        *gorm.DB
	txManager repository.TransactionManager

	userRepo            repository.UserRepository
	adminRepo           repository.AdminRepository
	categoryRepo        repository.CategoryRepository
	storeRepo           repository.StoreRepository
	factoryRepo         repository.FactoryRepository
	storeProductRepo    repository.StoreProductRepository
	factoryProductRepo  repository.FactoryProductRepository
	productCategoryRepo repository.ProductCategoryRepository
	reviewRepo          repository.ReviewRepository
	feedbackRepo        repository.FeedbackRepository
	orderRepo           repository.OrderRepository
	transactionRepo     repository.PaymentTransactionRepository
	actionRepo          repository.AdminActionRepository

	hasher     service.PasswordHasher
	tokens     service.TokenService
	tempTokens service.TempTokenService
	mailer     *recordingMailer
	storage    service.ObjectStorage
	logger     *slog.Logger

	accounts       usecase.AccountUsecase
	adminAccounts  usecase.AdminAccountUsecase
	categories     usecase.CategoryUsecase
	stores         usecase.StoreUsecase
	factories      usecase.FactoryUsecase
	storeCatalog   usecase.StoreCatalogUsecase
	factoryCatalog usecase.FactoryCatalogUsecase
	social         usecase.SocialUsecase
	orders         usecase.OrderUsecase
	moderation     usecase.ModerationUsecase
}

// recordingMailer captures outgoing mail instead of dialing SMTP.
type recordingMailer struct {
	verificationTokens map[string]string
	resetTokens        map[string]string
	failNext           bool
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{
		verificationTokens: make(map[string]string),
		resetTokens:        make(map[string]string),
	}
}

func (m *recordingMailer) SendVerificationEmail(_ context.Context, to, _, token string) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.verificationTokens[to] = token

	return nil
}

func (m *recordingMailer) SendAdminVerificationEmail(_ context.Context, to, _, token string) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.verificationTokens[to] = token

	return nil
}

func (m *recordingMailer) SendPasswordResetEmail(_ context.Context, to, _, token string) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("smtp unavailable")
	}
	m.resetTokens[to] = token

	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost:      4,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		TempTokenTTL:    30 * time.Minute,
	}

	return cfg
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:usecasedb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	env := &testEnv{
		db:        db,
		txManager: postgres.NewTransactionManager(db),

		userRepo:            postgres.NewUserRepository(db),
		adminRepo:           postgres.NewAdminRepository(db),
		categoryRepo:        postgres.NewCategoryRepository(db),
		storeRepo:           postgres.NewStoreRepository(db),
		factoryRepo:         postgres.NewFactoryRepository(db),
		storeProductRepo:    postgres.NewStoreProductRepository(db),
		factoryProductRepo:  postgres.NewFactoryProductRepository(db),
		productCategoryRepo: postgres.NewProductCategoryRepository(db),
		reviewRepo:          postgres.NewReviewRepository(db),
		feedbackRepo:        postgres.NewFeedbackRepository(db),
		orderRepo:           postgres.NewOrderRepository(db),
		transactionRepo:     postgres.NewPaymentTransactionRepository(db),
		actionRepo:          postgres.NewAdminActionRepository(db),

		hasher:     auth.NewBcryptHasher(cfg),
		tokens:     tokens,
		tempTokens: auth.NewTempTokenService(cfg),
		mailer:     newRecordingMailer(),
		storage:    infrastorage.NewWithBucket(bucket),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	signTTL := SignTTL(time.Hour)

	env.accounts = NewAccountService(AccountServiceParams{
		TxManager:    env.txManager,
		UserRepo:     env.userRepo,
		StoreRepo:    env.storeRepo,
		FactoryRepo:  env.factoryRepo,
		Hasher:       env.hasher,
		TokenService: env.tokens,
		TempTokens:   env.tempTokens,
		Mailer:       env.mailer,
		Storage:      env.storage,
		SignTTL:      signTTL,
		Logger:       env.logger,
	})
	env.adminAccounts = NewAdminAccountService(AdminAccountServiceParams{
		AdminRepo:    env.adminRepo,
		Hasher:       env.hasher,
		TokenService: env.tokens,
		TempTokens:   env.tempTokens,
		Mailer:       env.mailer,
		Logger:       env.logger,
	})
	env.categories = NewCategoryService(CategoryServiceParams{
		CategoryRepo: env.categoryRepo,
		Logger:       env.logger,
	})
	env.stores = NewStoreService(StoreServiceParams{
		TxManager:    env.txManager,
		StoreRepo:    env.storeRepo,
		CategoryRepo: env.categoryRepo,
		Storage:      env.storage,
		SignTTL:      signTTL,
		Logger:       env.logger,
	})
	env.factories = NewFactoryService(FactoryServiceParams{
		TxManager:    env.txManager,
		FactoryRepo:  env.factoryRepo,
		CategoryRepo: env.categoryRepo,
		Storage:      env.storage,
		SignTTL:      signTTL,
		Logger:       env.logger,
	})
	env.storeCatalog = NewStoreCatalogService(StoreCatalogServiceParams{
		StoreRepo:           env.storeRepo,
		ProductRepo:         env.storeProductRepo,
		ProductCategoryRepo: env.productCategoryRepo,
		Storage:             env.storage,
		SignTTL:             signTTL,
		Logger:              env.logger,
	})
	env.factoryCatalog = NewFactoryCatalogService(FactoryCatalogServiceParams{
		FactoryRepo:         env.factoryRepo,
		ProductRepo:         env.factoryProductRepo,
		ProductCategoryRepo: env.productCategoryRepo,
		Storage:             env.storage,
		SignTTL:             signTTL,
		Logger:              env.logger,
	})
	env.social = NewSocialService(SocialServiceParams{
		ReviewRepo:         env.reviewRepo,
		FeedbackRepo:       env.feedbackRepo,
		StoreProductRepo:   env.storeProductRepo,
		FactoryProductRepo: env.factoryProductRepo,
		StoreRepo:          env.storeRepo,
		FactoryRepo:        env.factoryRepo,
		Storage:            env.storage,
		SignTTL:            signTTL,
		Logger:             env.logger,
	})
	env.orders = NewOrderService(OrderServiceParams{
		TxManager:          env.txManager,
		OrderRepo:          env.orderRepo,
		TransactionRepo:    env.transactionRepo,
		StoreRepo:          env.storeRepo,
		FactoryRepo:        env.factoryRepo,
		StoreProductRepo:   env.storeProductRepo,
		FactoryProductRepo: env.factoryProductRepo,
		Storage:            env.storage,
		SignTTL:            signTTL,
		Logger:             env.logger,
	})
	env.moderation = NewModerationService(ModerationServiceParams{
		TxManager:  env.txManager,
		ActionRepo: env.actionRepo,
		Logger:     env.logger,
	})

	return env
}

// registerVerifiedUser registers and verifies a user through the real
// flows and returns its id.
func (env *testEnv) registerVerifiedUser(t *testing.T, email string, role entity.Role) uuid.UUID {
	t.Helper()

	out, err := env.accounts.Register(context.Background(), usecase.RegisterInput{
		Name:     "Test " + strings.Split(email, "@")[0],
		Email:    email,
		Password: "s3cret-pass",
		Role:     role.String(),
	})
	require.NoError(t, err)

	token, ok := env.mailer.verificationTokens[email]
	require.True(t, ok)
	require.NoError(t, env.accounts.VerifyEmail(context.Background(), token))

	return out.ID
}

// registerVerifiedAdmin registers and verifies a super-admin account.
func registerVerifiedAdmin(t *testing.T, env *testEnv, email string) uuid.UUID {
	t.Helper()

	out, err := env.adminAccounts.Register(context.Background(), usecase.RegisterInput{
		Name:     "Admin " + strings.Split(email, "@")[0],
		Email:    email,
		Password: "s3cret-pass",
		Role:     entity.AdminRoleSuper.String(),
	})
	require.NoError(t, err)

	token, ok := env.mailer.verificationTokens[email]
	require.True(t, ok)
	require.NoError(t, env.adminAccounts.VerifyEmail(context.Background(), token))

	return out.ID
}

// createStore opens a store for the owner and returns its id.
func (env *testEnv) createStore(t *testing.T, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	out, err := env.stores.Create(context.Background(), ownerID, usecase.CreateStoreInput{
		Name:         name,
		IDCardNumber: "ID-1234",
	})
	require.NoError(t, err)

	return out.ID
}

// createFactory opens a factory for the owner and returns its id.
func (env *testEnv) createFactory(t *testing.T, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	out, err := env.factories.Create(context.Background(), ownerID, usecase.CreateFactoryInput{
		Name:          name,
		LicenseNumber: "LIC-1234",
	})
	require.NoError(t, err)

	return out.ID
}
