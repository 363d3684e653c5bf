package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/storefrontlabs/storefront-api/internal/api/handler"
	"github.com/storefrontlabs/storefront-api/internal/api/middleware"
	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
	"github.com/storefrontlabs/storefront-api/internal/core/service"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/config"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/db/postgres"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/db/redis"
	"github.com/storefrontlabs/storefront-api/internal/infrastructure/storage"
	"github.com/storefrontlabs/storefront-api/internal/token"
)

// NewRouter builds the Echo instance with all routes registered.
//
// Route layout mirrors the three access tiers: /api is public, the cart and
// profile routes under /api require a user session, and /api/admin requires
// an admin session. Every handler is registered through report.Wrap so the
// Reporter middleware always finds an outcome classification.
func NewRouter(log zerolog.Logger, cfg *config.Config, db *postgres.DB, rdb *goredis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(report.Reporter(log))
	e.Use(echoprometheus.NewMiddleware("storefront"))
	e.Use(middleware.StoreTimeout(cfg.StoreTimeout))

	// --- Dependencies ---
	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	var limiter ports.LoginLimiter
	if rdb != nil {
		limiter = redis.NewLoginLimiter(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authRepo := postgres.NewAuthRepository(db)

	authService := service.NewAuthService(authRepo, codec, limiter)
	sessions := service.NewSessionValidator(codec, authRepo)
	categoryService := service.NewCategoryService(postgres.NewCategoryRepository(db), log)
	productService := service.NewProductService(postgres.NewProductRepository(db), log)
	cartService := service.NewCartService(postgres.NewCartRepository(db))
	imageService := service.NewImageService(postgres.NewImageRepository(db), files, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	imageHandler := handler.NewImageHandler(imageService)

	userGate := middleware.Auth(sessions, domain.RoleUser)
	adminGate := middleware.Auth(sessions, domain.RoleAdmin)

	// --- Public routes ---
	pub := e.Group("/api")
	pub.POST("/register", report.Wrap(authHandler.Register))
	pub.POST("/login", report.Wrap(authHandler.Login))
	pub.GET("/category", report.Wrap(categoryHandler.PublicList))
	pub.GET("/category/:id", report.Wrap(categoryHandler.PublicGet))
	pub.GET("/product", report.Wrap(productHandler.PublicList))
	pub.GET("/product/:id", report.Wrap(productHandler.PublicGet))
	pub.GET("/image/:id", report.Wrap(imageHandler.Serve))

	// --- User routes ---
	user := e.Group("/api", userGate)
	user.GET("/profile", report.Wrap(profileHandler.Get))
	user.PATCH("/profile", report.Wrap(profileHandler.Patch))
	user.GET("/cart", report.Wrap(cartHandler.List))
	user.POST("/cart", report.Wrap(cartHandler.Add))
	user.PATCH("/cart/:id", report.Wrap(cartHandler.Patch))
	user.DELETE("/cart/:id", report.Wrap(cartHandler.Remove))

	// --- Admin routes ---
	admin := e.Group("/api/admin", adminGate)
	admin.GET("/users", report.Wrap(profileHandler.ListUsers))
	admin.DELETE("/users/:id", report.Wrap(profileHandler.DeleteUser))
	admin.POST("/category", report.Wrap(categoryHandler.Create))
	admin.GET("/category/:id", report.Wrap(categoryHandler.AdminGet))
	admin.PATCH("/category/:id", report.Wrap(categoryHandler.Patch))
	admin.DELETE("/category/:id", report.Wrap(categoryHandler.Delete))
	admin.POST("/product", report.Wrap(productHandler.Create))
	admin.GET("/product/:id", report.Wrap(productHandler.AdminGet))
	admin.PATCH("/product/:id", report.Wrap(productHandler.Patch))
	admin.DELETE("/product/:id", report.Wrap(productHandler.Delete))
	admin.POST("/image", report.Wrap(imageHandler.Upload))
	admin.GET("/image", report.Wrap(imageHandler.List))
	admin.PATCH("/image/:id", report.Wrap(imageHandler.Patch))
	admin.DELETE("/image/:id", report.Wrap(imageHandler.Delete))

	// --- Observability and docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", report.Wrap(healthHandler.Liveness))            // liveness  – is the process alive?
	e.GET("/health/ready", report.Wrap(healthDepsHandler.Readiness)) // readiness – are dependencies up?

	return e, nil
}
