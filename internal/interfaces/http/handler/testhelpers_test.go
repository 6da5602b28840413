package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	contentapp "github.com/archerandash/storefront/internal/application/content"
	engagementapp "github.com/archerandash/storefront/internal/application/engagement"
	identityapp "github.com/archerandash/storefront/internal/application/identity"
	salesapp "github.com/archerandash/storefront/internal/application/sales"
	"github.com/archerandash/storefront/internal/application/seo"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/infrastructure/auth"
	"github.com/archerandash/storefront/internal/infrastructure/cache"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
	"github.com/archerandash/storefront/internal/infrastructure/storage"
	"github.com/archerandash/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "owner@archerandash.com"
	testAdminPassword = "correct-horse-battery"
)

// fakeGateway stands in for PayPal
type fakeGateway struct {
	mu            sync.Mutex
	createErr     error
	captureErr    error
	captureStatus string
	captures      int
}

func (g *fakeGateway) CreateOrder(_ context.Context, req *sales.CreatePaymentRequest) (*sales.CreatePaymentResponse, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &sales.CreatePaymentResponse{OrderID: "PAYPAL-" + req.Total.StringFixed(2), Status: "CREATED"}, nil
}

func (g *fakeGateway) CaptureOrder(_ context.Context, orderID string) (*sales.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.captures++
	if g.captureErr != nil {
		return nil, g.captureErr
	}
	status := g.captureStatus
	if status == "" {
		status = sales.CaptureStatusCompleted
	}
	return &sales.CaptureResult{
		OrderID:   orderID,
		CaptureID: "CAP-" + orderID,
		Status:    status,
		Amount:    decimal.RequireFromString("45.00"),
		Currency:  "GBP",
		Payer:     sales.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
	}, nil
}

// testEnv wires real services over an in-memory SQLite database
type testEnv struct {
	t       *testing.T
	db      *gorm.DB
	engine  *gin.Engine
	gateway *fakeGateway
	storage *storage.StubImageStorage
	authn   *identityapp.AuthService

	products     *ProductHandler
	categories   *CategoryHandler
	blog         *BlogHandler
	cart         *CartHandler
	paypal       *PayPalHandler
	orders       *OrderHandler
	subs         *SubscriptionHandler
	contact      *ContactHandler
	authHandler  *AuthHandler
	migrations   *MigrationHandler
	seoHandler   *SEOHandler
	requireAdmin gin.HandlerFunc
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	images := storage.NewStubImageStorage("https://img.archerandash.com")
	carts := cache.NewInMemoryCartStore(time.Hour)
	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() {
		_ = carts.Close()
		_ = idempotency.Close()
	})
	gateway := &fakeGateway{}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-that-is-long-enough-for-hs256",
		Expiration: 24 * time.Hour,
		Issuer:     "archerandash-test",
	})
	authService := identityapp.NewAuthService(persistence.NewGormUserRepository(db), jwtService, auth.NewInMemoryTokenBlacklist(), nil)
	_, err := authService.SeedAdmin(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	orderService := salesapp.NewOrderService(orderRepo, nil)
	cookie := config.CookieConfig{Path: "/", SameSite: "lax", CartTTL: 30 * 24 * time.Hour}

	env := &testEnv{
		t:       t,
		db:      db,
		engine:  gin.New(),
		gateway: gateway,
		storage: images,
		authn:   authService,

		products: NewProductHandler(
			catalogapp.NewProductService(productRepo, categoryRepo, catalogapp.WithImageStorage(images)),
			catalogapp.NewUploadService(images, 15*time.Minute),
		),
		categories:  NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, productRepo)),
		blog:        NewBlogHandler(contentapp.NewBlogService(persistence.NewGormBlogPostRepository(db), nil, nil)),
		cart:        NewCartHandler(salesapp.NewCartService(carts, productRepo), cookie),
		paypal:      NewPayPalHandler(salesapp.NewCheckoutService(gateway, orderService, carts, idempotency, nil)),
		orders:      NewOrderHandler(orderService),
		subs:        NewSubscriptionHandler(engagementapp.NewSubscriptionService(persistence.NewGormSubscriptionRepository(db), nil)),
		contact:     NewContactHandler(engagementapp.NewInquiryService(persistence.NewGormInquiryRepository(db), nil)),
		authHandler: NewAuthHandler(authService, cookie),
		migrations:  NewMigrationHandler(catalogapp.NewMigrationService(productRepo, nil)),
		seoHandler: NewSEOHandler(seo.NewService(productRepo, config.SiteConfig{
			BaseURL: "https://www.archerandash.com",
		})),
		requireAdmin: middleware.RequireAuth(authService, nil),
	}
	env.engine.Use(middleware.RequestID())
	env.mount()
	return env
}

// mount registers every handler the way the server does, minus rate limits
func (e *testEnv) mount() {
	admin := e.requireAdmin
	api := e.engine.Group("/api")

	api.GET("/products", e.products.List)
	api.GET("/products/:id", e.products.GetByID)
	api.GET("/products/lookup/:term", e.products.Lookup)
	api.POST("/products", admin, e.products.Create)
	api.POST("/products/upload-url", admin, e.products.CreateUploadURL)
	api.PUT("/products/:id", admin, e.products.Update)
	api.DELETE("/products/:id", admin, e.products.Delete)

	api.GET("/categories", e.categories.List)
	api.POST("/categories", admin, e.categories.Create)
	api.PUT("/categories", admin, e.categories.Update)
	api.DELETE("/categories", admin, e.categories.Delete)
	api.GET("/collections", e.categories.Collections)
	api.GET("/collections/:slug", e.categories.Collection)
	api.GET("/shop", e.categories.Shop)

	api.GET("/blog", e.blog.List)
	api.GET("/blog/:term", e.blog.Get)
	api.POST("/blog", admin, e.blog.Create)
	api.PUT("/blog/:id", admin, e.blog.Update)
	api.DELETE("/blog/:id", admin, e.blog.Delete)

	api.GET("/cart", e.cart.Get)
	api.DELETE("/cart", e.cart.Clear)
	api.POST("/cart/items", e.cart.AddItem)
	api.PATCH("/cart/items/:variantId", e.cart.UpdateItem)
	api.DELETE("/cart/items/:variantId", e.cart.RemoveItem)

	api.POST("/paypal/create-order", e.paypal.CreateOrder)
	api.POST("/paypal/capture-order", e.paypal.CaptureOrder)

	api.POST("/orders", e.orders.Record)
	api.GET("/orders", admin, e.orders.List)
	api.GET("/orders/:id", admin, e.orders.Get)
	api.PATCH("/orders/:id", admin, e.orders.UpdateStatus)
	api.DELETE("/orders/:id", admin, e.orders.Delete)

	api.POST("/subscriptions", e.subs.Subscribe)
	api.GET("/subscriptions", admin, e.subs.List)
	api.DELETE("/subscriptions/:id", admin, e.subs.Delete)
	api.POST("/contact", e.contact.Submit)
	api.GET("/contact", admin, e.contact.List)
	api.PATCH("/contact/:id", admin, e.contact.UpdateStatus)

	api.POST("/auth/login", e.authHandler.Login)
	api.GET("/auth/check", e.authHandler.Check)
	api.POST("/auth/logout", e.authHandler.Logout)

	api.GET("/migrations/categories", admin, e.migrations.CategoryStatus)
	api.POST("/migrations/categories", admin, e.migrations.MigrateCategories)
	api.GET("/migrations/slugs", admin, e.migrations.BackfillSlugs)

	api.GET("/feed", e.seoHandler.Feed)
	e.engine.GET("/sitemap.xml", e.seoHandler.Sitemap)
	e.engine.GET("/robots.txt", e.seoHandler.Robots)
}

// request performs a request against the env's engine. A non-nil body is
// JSON encoded unless it is already a string.
func (e *testEnv) request(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// login signs the test admin in and returns the session cookie
func (e *testEnv) login() *http.Cookie {
	e.t.Helper()
	w := e.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(e.t, http.StatusOK, w.Code)
	return findCookie(e.t, w, middleware.TokenCookie)
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

// createProduct stores a product through the service layer's repository
func (e *testEnv) createProduct(title string, variants ...catalogapp.VariantInput) catalogapp.ProductResponse {
	e.t.Helper()
	svc := catalogapp.NewProductService(
		persistence.NewGormProductRepository(e.db),
		persistence.NewGormCategoryRepository(e.db),
	)
	product, err := svc.Create(context.Background(), catalogapp.ProductRequest{
		Title:       title,
		Description: "Giclée print on 380gsm canvas",
		Variants:    variants,
		Images:      []string{"https://img.archerandash.com/products/" + uuid.NewString() + ".jpg"},
	})
	require.NoError(e.t, err)
	return *product
}

func variant(size, price string) catalogapp.VariantInput {
	return catalogapp.VariantInput{Size: size, Price: decimal.RequireFromString(price)}
}
