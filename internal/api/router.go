package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/merrbio/marketplace-api/internal/api/handler"
	"github.com/merrbio/marketplace-api/internal/api/middleware"
	"github.com/merrbio/marketplace-api/internal/core/domain"
	"github.com/merrbio/marketplace-api/internal/core/service"
	"github.com/merrbio/marketplace-api/internal/infrastructure/config"
	"github.com/merrbio/marketplace-api/internal/infrastructure/db/postgres"
	redisdb "github.com/merrbio/marketplace-api/internal/infrastructure/db/redis"
)

// loginRatePerSecond caps per-IP login attempts; bcrypt makes each attempt
// expensive server-side, the limiter keeps them from arriving in bulk.
const (
	loginRatePerSecond = 1
	loginBurst         = 5
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, images service.ImageStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("10M")) // uploads ride in multipart bodies
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	catalogCache := redisdb.NewCatalogCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, log)
	productService := service.NewProductService(productRepo, images, catalogCache, log)
	orderService := service.NewOrderService(orderRepo, productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	farmerOnly := middleware.RequireRole(domain.RoleFarmer)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login,
		middleware.RateLimitPerIP(rate.Limit(loginRatePerSecond), loginBurst))

	// --- Catalog ---
	e.GET("/products", productHandler.List) // public
	e.POST("/products", productHandler.Create, authRequired, farmerOnly)
	e.PUT("/products/:id", productHandler.Update, authRequired, farmerOnly)
	e.DELETE("/products/:id", productHandler.Delete, authRequired, farmerOnly)

	// --- Orders ---
	e.POST("/orders", orderHandler.Create) // public, buyers need no account
	e.GET("/orders/farmer/:farmer", orderHandler.ListByFarmer, authRequired, farmerOnly)
	e.PUT("/orders/:id/status", orderHandler.UpdateStatus, authRequired, farmerOnly)

	// --- User management (admin) ---
	users := e.Group("/users", authRequired, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.DELETE("/:username", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
