package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/archerandash/storefront/docs"
	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	contentapp "github.com/archerandash/storefront/internal/application/content"
	engagementapp "github.com/archerandash/storefront/internal/application/engagement"
	identityapp "github.com/archerandash/storefront/internal/application/identity"
	salesapp "github.com/archerandash/storefront/internal/application/sales"
	"github.com/archerandash/storefront/internal/application/seo"
	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/content"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/auth"
	"github.com/archerandash/storefront/internal/infrastructure/cache"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/archerandash/storefront/internal/infrastructure/event"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/archerandash/storefront/internal/infrastructure/payment"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
	"github.com/archerandash/storefront/internal/infrastructure/storage"
	"github.com/archerandash/storefront/internal/infrastructure/telemetry"
	"github.com/archerandash/storefront/internal/interfaces/http/handler"
	"github.com/archerandash/storefront/internal/interfaces/http/middleware"
	"github.com/archerandash/storefront/internal/interfaces/http/router"
)

const (
	hubDir       = "web/hub"
	hubLoginPath = "/hub/login"

	// event handlers remember processed events for this long
	eventDedupTTL = 24 * time.Hour
)

// @title           Archer & Ash Storefront API
// @version         1.0
// @description     Catalog, cart, checkout and admin API for the Archer & Ash art print shop.

// @BasePath  /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Admin session issued by POST /auth/login

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: time.RFC3339,
	}
	log := logger.New(logCfg)

	// Telemetry comes up before anything that logs or traces
	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if providers.Logs.IsEnabled() {
		log = logger.New(logCfg, telemetry.NewZapCore(providers.Logs, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLogger))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterGormTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	blogRepo := persistence.NewGormBlogPostRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	inquiryRepo := persistence.NewGormInquiryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Redis backed stores. Development may run without Redis.
	stores := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	)
	defer func() {
		_ = stores.Close()
	}()

	carts, err := stores.CreateCartStore(cfg.Cookie.CartTTL)
	if err != nil {
		log.Fatal("Failed to create cart store", zap.Error(err))
	}
	defer func() { _ = carts.Close() }()

	captureKeys, err := stores.CreateIdempotencyStore("storefront:capture:")
	if err != nil {
		log.Fatal("Failed to create capture idempotency store", zap.Error(err))
	}
	defer func() { _ = captureKeys.Close() }()

	eventKeys, err := stores.CreateIdempotencyStore("storefront:events:")
	if err != nil {
		log.Fatal("Failed to create event idempotency store", zap.Error(err))
	}
	defer func() { _ = eventKeys.Close() }()

	var blacklist auth.TokenBlacklist
	if client, err := stores.RedisClient(); err == nil && client != nil {
		blacklist = auth.NewRedisTokenBlacklist(client)
	} else {
		log.Warn("Token blacklist is process-local; logouts will not survive a restart")
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Payment gateway
	paypalCfg, err := payment.NewPayPalConfig(cfg.PayPal)
	if err != nil {
		log.Fatal("Invalid PayPal configuration", zap.Error(err))
	}
	gateway, err := payment.NewPayPalAdapter(paypalCfg, payment.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create PayPal adapter", zap.Error(err))
	}

	// Image storage
	var images catalogapp.ImageStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to create image storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Image bucket is not available", zap.Error(err))
		}
		images = s3Storage
		log.Info("Image storage ready", zap.String("bucket", s3Storage.Bucket()))
	} else if !cfg.App.IsProduction() {
		images = storage.NewStubImageStorage(cfg.Storage.PublicBaseURL)
		log.Warn("Image storage disabled; issuing stub upload URLs")
	} else {
		log.Warn("Image storage disabled; upload URLs are unavailable")
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())

	storeMetrics, err := telemetry.NewStoreMetrics(providers.Meter.Meter("storefront/sales"))
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	// Services
	catalogOpts := []catalogapp.ServiceOption{
		catalogapp.WithLogger(log),
		catalogapp.WithEventPublisher(eventBus),
	}
	if images != nil {
		catalogOpts = append(catalogOpts, catalogapp.WithImageStorage(images))
	}
	productService := catalogapp.NewProductService(productRepo, categoryRepo, catalogOpts...)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, catalogOpts...)
	migrationService := catalogapp.NewMigrationService(productRepo, log)
	var uploadService *catalogapp.UploadService
	if images != nil {
		uploadService = catalogapp.NewUploadService(images, cfg.Storage.PresignExpiration)
	}

	blogService := contentapp.NewBlogService(blogRepo, eventBus, log)

	orderService := salesapp.NewOrderService(orderRepo, log)
	orderService.SetEventPublisher(eventBus)
	cartService := salesapp.NewCartService(carts, productRepo)
	cartService.SetMetrics(storeMetrics)
	checkoutService := salesapp.NewCheckoutService(gateway, orderService, carts, captureKeys, log)
	checkoutService.SetMetrics(storeMetrics)

	subscriptionService := engagementapp.NewSubscriptionService(subscriptionRepo, log)
	inquiryService := engagementapp.NewInquiryService(inquiryRepo, log)

	authService := identityapp.NewAuthService(userRepo, auth.NewJWTService(cfg.JWT), blacklist, log)
	seoService := seo.NewService(productRepo, cfg.Site)

	// Event handlers
	orderPlaced := salesapp.NewOrderPlacedHandler(storeMetrics, log)
	orderStatusChanged := salesapp.NewOrderStatusChangedHandler(storeMetrics, log)
	eventBus.Subscribe(event.NewIdempotentHandler(orderPlaced, eventKeys, eventDedupTTL, log), orderPlaced.EventTypes()...)
	eventBus.Subscribe(event.NewIdempotentHandler(orderStatusChanged, eventKeys, eventDedupTTL, log), orderStatusChanged.EventTypes()...)
	eventBus.Subscribe(contentChangeLogger(log),
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductDeleted,
		catalog.EventTypeCategoryCreated,
		content.EventTypeBlogPostPublished,
	)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Warn("Event bus did not drain", zap.Error(err))
		}
	}()

	// Handlers
	handlers := router.Handlers{
		Product:      handler.NewProductHandler(productService, uploadService),
		Category:     handler.NewCategoryHandler(categoryService),
		Blog:         handler.NewBlogHandler(blogService),
		Cart:         handler.NewCartHandler(cartService, cfg.Cookie),
		PayPal:       handler.NewPayPalHandler(checkoutService),
		Order:        handler.NewOrderHandler(orderService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Contact:      handler.NewContactHandler(inquiryService),
		Auth:         handler.NewAuthHandler(authService, cfg.Cookie),
		Migration:    handler.NewMigrationHandler(migrationService),
		SEO:          handler.NewSEOHandler(seoService),
	}

	// Set Gin mode
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Use field json tag names in validation messages
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	// Request ID first so every later middleware can log it
	engine.Use(middleware.RequestID())
	// Tracing before logging so log lines carry trace and span ids
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SpanEnricher())
	if cfg.Telemetry.Enabled {
		httpMetrics, err := middleware.HTTPMetrics(providers.Meter.Meter("storefront/http"))
		if err != nil {
			log.Fatal("Failed to create HTTP metrics", zap.Error(err))
		}
		engine.Use(httpMetrics)
	}
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))
	engine.Use(middleware.Secure(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	requireAuth := middleware.RequireAuth(authService, log)
	guards := router.Guards{RequireAuth: requireAuth}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		guards.WriteLimit = middleware.RateLimit(limiter)
		log.Info("Rate limiting enabled for public writes",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", healthHandler(db))

	if cfg.Swagger.Enabled {
		var swaggerAuth gin.HandlerFunc
		if cfg.Swagger.RequireAuth {
			swaggerAuth = requireAuth
		}
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, swaggerAuth),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	routes := router.NewRouter(engine).
		Register(router.StorefrontGroups(handlers, guards)...).
		Setup()
	log.Debug("API routes mounted", zap.Int("count", len(routes)))
	router.RegisterCrawlerRoutes(engine, handlers.SEO)

	if _, err := os.Stat(hubDir); err == nil {
		engine.Group("/hub", middleware.HubGuard(authService, hubLoginPath)).Static("/", hubDir)
		log.Info("Serving admin hub", zap.String("dir", hubDir))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(sigCtx, srv, log, shutdownTimeout); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

// contentChangeLogger records catalog and blog changes in the service log
func contentChangeLogger(log *zap.Logger) *event.HandlerFunc {
	return event.NewHandlerFunc(func(_ context.Context, e shared.DomainEvent) error {
		log.Info("Content changed",
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()),
		)
		return nil
	})
}
