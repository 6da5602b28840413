package catalog

import (
	"context"
	"time"
)

// ImageStorage issues upload URLs for product images and removes images the
// store owns
type ImageStorage interface {
	// GenerateUploadURL returns a presigned PUT URL for key and when it expires
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// PublicURL returns the URL the object is served from
	PublicURL(key string) string

	// DeleteObject removes the object stored under key
	DeleteObject(ctx context.Context, key string) error

	// KeyFromURL returns the key of an object served from this storage.
	// ok is false for URLs hosted elsewhere.
	KeyFromURL(url string) (key string, ok bool)
}
