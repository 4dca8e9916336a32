package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/marketcore/marketplace-api/docs"
	"github.com/marketcore/marketplace-api/internal/api/handler"
	"github.com/marketcore/marketplace-api/internal/api/middleware"
	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// Deps bundles the already-constructed services the router exposes. Wiring
// (repositories, caches, dispatcher, publisher) happens in cmd/api so the
// router stays a pure route table.
type Deps struct {
	Auth    ports.AuthService
	Catalog ports.CatalogService
	Cart    ports.CartService
	Orders  ports.OrderService
	Users   ports.UserService

	JWTSecret string
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	authHandler := handler.NewAuthHandler(deps.Auth)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Cart)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	userHandler := handler.NewUserHandler(deps.Users)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	authed := middleware.Auth(deps.JWTSecret)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1")

	// --- Public: account entry points ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/password-reset", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	auth.PUT("/password", authHandler.UpdatePassword, authed)
	auth.DELETE("/account", authHandler.DeleteAccount, authed)

	// --- Public: catalog browsing ---
	v1.GET("/products", catalogHandler.ListProducts)
	v1.GET("/products/search", catalogHandler.SearchProducts)
	v1.GET("/products/:product_id", catalogHandler.GetProduct)
	v1.GET("/products/:product_id/watch", catalogHandler.WatchProduct)
	v1.GET("/categories", catalogHandler.ListCategories)
	v1.GET("/categories/:category_id", catalogHandler.GetCategory)
	v1.GET("/brands", catalogHandler.ListBrands)
	v1.GET("/brands/:brand_id", catalogHandler.GetBrand)

	// --- Authenticated: cart ---
	cart := v1.Group("/cart", authed)
	cart.GET("", cartHandler.Get)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:item_id", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:item_id", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.Clear)
	cart.GET("/watch", cartHandler.Watch)

	// --- Authenticated: orders ---
	orders := v1.Group("/orders", authed)
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/:order_id", orderHandler.Get)
	orders.POST("/:order_id/cancel", orderHandler.Cancel)
	orders.GET("/:order_id/watch", orderHandler.Watch)

	// --- Authenticated: profile ---
	me := v1.Group("/users/me", authed)
	me.GET("", userHandler.GetProfile)
	me.PUT("", userHandler.UpdateProfile)
	me.PUT("/favorites/:product_id", userHandler.AddFavorite)
	me.DELETE("/favorites/:product_id", userHandler.RemoveFavorite)
	me.PUT("/device-token", userHandler.RegisterDeviceToken)

	// --- Admin / staff ---
	admin := v1.Group("/admin", authed, staff)
	admin.GET("/orders", orderHandler.ListAll)
	admin.PUT("/orders/:order_id/status", orderHandler.UpdateStatus)

	admin.POST("/products", catalogHandler.CreateProduct)
	admin.PUT("/products/:product_id", catalogHandler.UpdateProduct)
	admin.DELETE("/products/:product_id", catalogHandler.DeleteProduct)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.PUT("/categories/:category_id", catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:category_id", catalogHandler.DeleteCategory)
	admin.POST("/brands", catalogHandler.CreateBrand)
	admin.PUT("/brands/:brand_id", catalogHandler.UpdateBrand)
	admin.DELETE("/brands/:brand_id", catalogHandler.DeleteBrand)

	admin.GET("/users", userHandler.SearchUsers)
	admin.GET("/users/role/:role", userHandler.ListUsersByRole)
	admin.GET("/users/:user_id", userHandler.GetUser)
	admin.PUT("/users/:user_id/role", userHandler.SetRole, adminOnly)

	return e
}
