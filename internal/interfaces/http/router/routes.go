package router

import (
	"github.com/archerandash/storefront/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers are the API handlers the storefront routes dispatch to
type Handlers struct {
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Blog         *handler.BlogHandler
	Cart         *handler.CartHandler
	PayPal       *handler.PayPalHandler
	Order        *handler.OrderHandler
	Subscription *handler.SubscriptionHandler
	Contact      *handler.ContactHandler
	Auth         *handler.AuthHandler
	Migration    *handler.MigrationHandler
	SEO          *handler.SEOHandler
}

// Guards are the per-route middleware
type Guards struct {
	// RequireAuth rejects requests without an admin session
	RequireAuth gin.HandlerFunc
	// WriteLimit throttles the public write endpoints per client
	WriteLimit gin.HandlerFunc
}

func (g Guards) limit() []gin.HandlerFunc {
	if g.WriteLimit == nil {
		return nil
	}
	return []gin.HandlerFunc{g.WriteLimit}
}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	return append(append(out, chain...), h)
}

// StorefrontGroups builds the API route groups. Reads of the catalog, the
// blog and the cart are public, as are checkout and the customer-facing
// forms. Everything else needs an admin session.
func StorefrontGroups(h Handlers, g Guards) []RouteRegistrar {
	auth := g.RequireAuth
	limited := g.limit()

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.GET("/lookup/:term", h.Product.Lookup)
	products.POST("", auth, h.Product.Create)
	products.POST("/upload-url", auth, h.Product.CreateUploadURL)
	products.PUT("/:id", auth, h.Product.Update)
	products.DELETE("/:id", auth, h.Product.Delete)

	categories := NewDomainGroup("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.POST("", auth, h.Category.Create)
	categories.PUT("", auth, h.Category.Update)
	categories.DELETE("", auth, h.Category.Delete)

	collections := NewDomainGroup("collections", "/collections")
	collections.GET("", h.Category.Collections)
	collections.GET("/:slug", h.Category.Collection)

	shop := NewDomainGroup("shop", "/shop")
	shop.GET("", h.Category.Shop)

	blog := NewDomainGroup("blog", "/blog")
	blog.GET("", h.Blog.List)
	blog.GET("/:term", h.Blog.Get)
	blog.POST("", auth, h.Blog.Create)
	blog.PUT("/:id", auth, h.Blog.Update)
	blog.DELETE("/:id", auth, h.Blog.Delete)

	cart := NewDomainGroup("cart", "/cart")
	cart.GET("", h.Cart.Get)
	cart.DELETE("", h.Cart.Clear)
	cart.POST("/items", h.Cart.AddItem)
	cart.PATCH("/items/:variantId", h.Cart.UpdateItem)
	cart.DELETE("/items/:variantId", h.Cart.RemoveItem)

	paypal := NewDomainGroup("paypal", "/paypal")
	paypal.POST("/create-order", h.PayPal.CreateOrder)
	paypal.POST("/capture-order", h.PayPal.CaptureOrder)

	orders := NewDomainGroup("orders", "/orders")
	orders.POST("", with(limited, h.Order.Record)...)
	orders.GET("", auth, h.Order.List)
	orders.GET("/:id", auth, h.Order.Get)
	orders.PATCH("/:id", auth, h.Order.UpdateStatus)
	orders.DELETE("/:id", auth, h.Order.Delete)

	subscriptions := NewDomainGroup("subscriptions", "/subscriptions")
	subscriptions.POST("", with(limited, h.Subscription.Subscribe)...)
	subscriptions.GET("", auth, h.Subscription.List)
	subscriptions.DELETE("/:id", auth, h.Subscription.Delete)

	contact := NewDomainGroup("contact", "/contact")
	contact.POST("", with(limited, h.Contact.Submit)...)
	contact.GET("", auth, h.Contact.List)
	contact.PATCH("/:id", auth, h.Contact.UpdateStatus)

	authGroup := NewDomainGroup("auth", "/auth")
	authGroup.POST("/login", with(limited, h.Auth.Login)...)
	authGroup.GET("/check", h.Auth.Check)
	authGroup.POST("/logout", h.Auth.Logout)

	migrations := NewDomainGroup("migrations", "/migrations").Use(auth)
	migrations.GET("/categories", h.Migration.CategoryStatus)
	migrations.POST("/categories", h.Migration.MigrateCategories)
	migrations.GET("/slugs", h.Migration.BackfillSlugs)

	feed := NewDomainGroup("feed", "/feed")
	feed.GET("", h.SEO.Feed)

	return []RouteRegistrar{
		products, categories, collections, shop, blog, cart, paypal,
		orders, subscriptions, contact, authGroup, migrations, feed,
	}
}

// RegisterCrawlerRoutes mounts the files crawlers expect at the site root
func RegisterCrawlerRoutes(engine *gin.Engine, seo *handler.SEOHandler) {
	engine.GET("/sitemap.xml", seo.Sitemap)
	engine.GET("/robots.txt", seo.Robots)
}
