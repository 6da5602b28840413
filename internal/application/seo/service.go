// Package seo renders the public machine-readable views of the catalog:
// the merchant feed, the sitemap and robots.txt.
package seo

import (
	"time"

	"github.com/archerandash/storefront/internal/infrastructure/config"
)

// Service renders feeds and crawler files
type Service struct {
	products    ProductLister
	baseURL     string
	feedBaseURL string
	brand       string
	now         func() time.Time
}

// NewService creates a new Service
func NewService(products ProductLister, site config.SiteConfig) *Service {
	feedBase := site.FeedBaseURL
	if feedBase == "" {
		feedBase = site.BaseURL
	}
	brand := site.Brand
	if brand == "" {
		brand = defaultBrand
	}
	return &Service{
		products:    products,
		baseURL:     site.BaseURL,
		feedBaseURL: feedBase,
		brand:       brand,
		now:         time.Now,
	}
}
