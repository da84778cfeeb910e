package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"bazar/config"
	"bazar/internal/delivery"
	"bazar/internal/delivery/http"
	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router/handler"
	"bazar/internal/infra/auth"
	logs "bazar/internal/infra/log"
	"bazar/internal/infra/mail"
	"bazar/internal/infra/persistence/postgres"
	"bazar/internal/infra/storage"
	"bazar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewUserRepository,
			postgres.NewAdminRepository,
			postgres.NewCategoryRepository,
			postgres.NewStoreRepository,
			postgres.NewFactoryRepository,
			postgres.NewStoreProductRepository,
			postgres.NewFactoryProductRepository,
			postgres.NewProductCategoryRepository,
			postgres.NewReviewRepository,
			postgres.NewFeedbackRepository,
			postgres.NewOrderRepository,
			postgres.NewPaymentTransactionRepository,
			postgres.NewAdminActionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewTempTokenService,
			mail.NewSMTPMailer,
			storage.New,
			newSignTTL,
		),
	)
}

// newSignTTL exposes the signed URL lifetime as an injectable value.
func newSignTTL(cfg *config.Config) impl.SignTTL {
	if cfg.Storage == nil || cfg.Storage.SignTTL == 0 {
		return impl.SignTTL(time.Hour)
	}

	return impl.SignTTL(cfg.Storage.SignTTL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewAdminAccountService,
			impl.NewCategoryService,
			impl.NewStoreService,
			impl.NewFactoryService,
			impl.NewStoreCatalogService,
			impl.NewFactoryCatalogService,
			impl.NewSocialService,
			impl.NewOrderService,
			impl.NewModerationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewAdminAccountHandler,
			handler.NewCategoryHandler,
			handler.NewStoreHandler,
			handler.NewFactoryHandler,
			handler.NewStoreCatalogHandler,
			handler.NewFactoryCatalogHandler,
			handler.NewSocialHandler,
			handler.NewOrderHandler,
			handler.NewModerationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
