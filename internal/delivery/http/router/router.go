// Package router contains routing setup for the HTTP delivery.
package router

import (
	custommiddleware "bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/router/handler"
	"bazar/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler the router registers, injected by Fx.
type RouterParams struct {
	fx.In

	AccountHandler        *handler.AccountHandler
	AdminAccountHandler   *handler.AdminAccountHandler
	CategoryHandler       *handler.CategoryHandler
	StoreHandler          *handler.StoreHandler
	FactoryHandler        *handler.FactoryHandler
	StoreCatalogHandler   *handler.StoreCatalogHandler
	FactoryCatalogHandler *handler.FactoryCatalogHandler
	SocialHandler         *handler.SocialHandler
	OrderHandler          *handler.OrderHandler
	ModerationHandler     *handler.ModerationHandler
	AuthMiddleware        *custommiddleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware
	authenticate := auth.Authenticate
	superAdmin := auth.RequireAdmin(entity.AdminRoleSuper.String())
	storeOwner := auth.RequireRole(entity.RoleStoreAdmin.String())
	factoryOwner := auth.RequireRole(entity.RoleFactoryAdmin.String())

	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api/v1")

	// User identity and session.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.params.AccountHandler.Register)
		authGroup.GET("/verify/:token", r.params.AccountHandler.VerifyEmail)
		authGroup.POST("/login", r.params.AccountHandler.Login)
		authGroup.POST("/refresh", r.params.AccountHandler.RefreshAccessToken)
		authGroup.POST("/logout", r.params.AccountHandler.Logout, authenticate)
		authGroup.POST("/forgot-password", r.params.AccountHandler.ForgotPassword)
		authGroup.POST("/reset-password/:token", r.params.AccountHandler.ResetPassword)
	}

	// User profiles.
	userGroup := api.Group("/users", authenticate)
	{
		userGroup.GET("", r.params.AccountHandler.ListUsers, auth.RequireAdmin())
		userGroup.GET("/me", r.params.AccountHandler.GetProfile)
		userGroup.PUT("/me", r.params.AccountHandler.UpdateProfile)
		userGroup.PUT("/me/image", r.params.AccountHandler.UpdateProfileImage)
		userGroup.DELETE("/me/image", r.params.AccountHandler.DeleteProfileImage)
		userGroup.DELETE("/me", r.params.AccountHandler.DeleteAccount)
	}

	// Admin identity, parallel surface over the admin principal table.
	adminGroup := api.Group("/admin")
	{
		adminGroup.POST("/register", r.params.AdminAccountHandler.Register)
		adminGroup.GET("/verify/:token", r.params.AdminAccountHandler.VerifyEmail)
		adminGroup.POST("/login", r.params.AdminAccountHandler.Login)
		adminGroup.POST("/refresh", r.params.AdminAccountHandler.RefreshAccessToken)
		adminGroup.POST("/logout", r.params.AdminAccountHandler.Logout, authenticate)
		adminGroup.POST("/forgot-password", r.params.AdminAccountHandler.ForgotPassword)
		adminGroup.POST("/reset-password/:token", r.params.AdminAccountHandler.ResetPassword)

		adminGroup.GET("", r.params.AdminAccountHandler.ListAdmins, authenticate, superAdmin)
		adminGroup.GET("/me", r.params.AdminAccountHandler.GetProfile, authenticate, auth.RequireAdmin())
		adminGroup.PUT("/me", r.params.AdminAccountHandler.UpdateProfile, authenticate, auth.RequireAdmin())

		// Moderation verbs and the audit trail.
		actionGroup := adminGroup.Group("/actions", authenticate, superAdmin)
		{
			actionGroup.POST("/:target/:id/:verb", r.params.ModerationHandler.Apply)
			actionGroup.GET("", r.params.ModerationHandler.ListActions)
			actionGroup.GET("/:target/:id", r.params.ModerationHandler.ListActionsForTarget)
		}
	}

	// Global categories: public reads, super-admin writes.
	api.GET("/categories", r.params.CategoryHandler.List)
	categoryGroup := api.Group("/categories", authenticate, superAdmin)
	{
		categoryGroup.POST("", r.params.CategoryHandler.Create)
		categoryGroup.PUT("/:id", r.params.CategoryHandler.Update)
		categoryGroup.DELETE("/:id", r.params.CategoryHandler.Delete)
	}

	// Store lifecycle and catalog.
	storeGroup := api.Group("/store")
	{
		storeGroup.GET("/all", r.params.StoreHandler.GetAll, authenticate, auth.RequireAdmin())
		storeGroup.GET("/:id", r.params.StoreHandler.GetByID)
		storeGroup.GET("/:id/products", r.params.StoreCatalogHandler.ListLiveProducts)
		storeGroup.GET("/products/:id/reviews", r.params.SocialHandler.ListStoreProductReviews)

		ownerGroup := storeGroup.Group("", authenticate, storeOwner)
		{
			ownerGroup.POST("", r.params.StoreHandler.Create)
			ownerGroup.GET("/me", r.params.StoreHandler.GetMine)
			ownerGroup.PUT("/me", r.params.StoreHandler.Update)
			ownerGroup.DELETE("/me", r.params.StoreHandler.Delete)

			ownerGroup.POST("/products", r.params.StoreCatalogHandler.CreateProduct)
			ownerGroup.GET("/products", r.params.StoreCatalogHandler.ListProducts)
			ownerGroup.GET("/products/:id", r.params.StoreCatalogHandler.GetProduct)
			ownerGroup.PUT("/products/:id", r.params.StoreCatalogHandler.UpdateProduct)
			ownerGroup.DELETE("/products/:id", r.params.StoreCatalogHandler.DeleteProduct)

			ownerGroup.POST("/product-categories", r.params.StoreCatalogHandler.CreateCategory)
			ownerGroup.GET("/product-categories", r.params.StoreCatalogHandler.ListCategories)
			ownerGroup.PUT("/product-categories/:id", r.params.StoreCatalogHandler.UpdateCategory)
			ownerGroup.DELETE("/product-categories/:id", r.params.StoreCatalogHandler.DeleteCategory)

			ownerGroup.GET("/orders/:storeId", r.params.OrderHandler.ListStoreOrders)
			ownerGroup.GET("/transactions/:storeId", r.params.OrderHandler.ListStoreTransactions)
		}

		// Buyers rate retail products.
		storeGroup.POST("/reviews", r.params.SocialHandler.CreateStoreProductReview,
			authenticate, auth.RequireRole(entity.RoleBuyer.String()))
	}

	// Factory lifecycle and catalog, parallel to the store surface.
	factoryGroup := api.Group("/factory")
	{
		factoryGroup.GET("/all", r.params.FactoryHandler.GetAll, authenticate, auth.RequireAdmin())
		factoryGroup.GET("/:id", r.params.FactoryHandler.GetByID)
		factoryGroup.GET("/:id/products", r.params.FactoryCatalogHandler.ListApprovedProducts)
		factoryGroup.GET("/products/:id/reviews", r.params.SocialHandler.ListFactoryProductReviews)

		ownerGroup := factoryGroup.Group("", authenticate, factoryOwner)
		{
			ownerGroup.POST("", r.params.FactoryHandler.Create)
			ownerGroup.GET("/me", r.params.FactoryHandler.GetMine)
			ownerGroup.PUT("/me", r.params.FactoryHandler.Update)
			ownerGroup.DELETE("/me", r.params.FactoryHandler.Delete)

			ownerGroup.POST("/products", r.params.FactoryCatalogHandler.CreateProduct)
			ownerGroup.GET("/products", r.params.FactoryCatalogHandler.ListProducts)
			ownerGroup.GET("/products/:id", r.params.FactoryCatalogHandler.GetProduct)
			ownerGroup.PUT("/products/:id", r.params.FactoryCatalogHandler.UpdateProduct)
			ownerGroup.DELETE("/products/:id", r.params.FactoryCatalogHandler.DeleteProduct)

			ownerGroup.POST("/product-categories", r.params.FactoryCatalogHandler.CreateCategory)
			ownerGroup.GET("/product-categories", r.params.FactoryCatalogHandler.ListCategories)
			ownerGroup.PUT("/product-categories/:id", r.params.FactoryCatalogHandler.UpdateCategory)
			ownerGroup.DELETE("/product-categories/:id", r.params.FactoryCatalogHandler.DeleteCategory)

			ownerGroup.GET("/orders/:factoryId", r.params.OrderHandler.ListFactoryOrders)
			ownerGroup.GET("/transactions/:factoryId", r.params.OrderHandler.ListFactoryTransactions)
		}

		// Store owners rate wholesale products.
		factoryGroup.POST("/reviews", r.params.SocialHandler.CreateFactoryProductReview,
			authenticate, storeOwner)
	}

	// Reviews and feedback shared by both surfaces.
	reviewGroup := api.Group("/reviews", authenticate)
	{
		reviewGroup.PUT("/:id", r.params.SocialHandler.UpdateReview)
		reviewGroup.DELETE("/:id", r.params.SocialHandler.DeleteReview)
	}

	api.GET("/feedbacks/:target/:id", r.params.SocialHandler.ListFeedback)
	feedbackGroup := api.Group("/feedbacks", authenticate)
	{
		feedbackGroup.POST("", r.params.SocialHandler.CreateFeedback)
		feedbackGroup.PUT("/:id", r.params.SocialHandler.UpdateFeedback)
		feedbackGroup.DELETE("/:id", r.params.SocialHandler.DeleteFeedback)
	}

	// Orders and payments.
	orderGroup := api.Group("/orders", authenticate)
	{
		orderGroup.POST("", r.params.OrderHandler.Create,
			auth.RequireRole(entity.RoleBuyer.String(), entity.RoleStoreAdmin.String()))
		orderGroup.GET("/mine", r.params.OrderHandler.ListMine)
		orderGroup.GET("/:id", r.params.OrderHandler.GetByID)
		orderGroup.PUT("/:id/status", r.params.OrderHandler.UpdateStatus,
			auth.RequireRole(entity.RoleStoreAdmin.String(), entity.RoleFactoryAdmin.String()))
		orderGroup.DELETE("/:id", r.params.OrderHandler.Delete, auth.RequireAdmin())
		orderGroup.POST("/:id/pay", r.params.OrderHandler.Pay)
	}
}
