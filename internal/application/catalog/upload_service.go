package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultUploadURLExpiry is how long a presigned upload URL stays valid
const DefaultUploadURLExpiry = 15 * time.Minute

// productImagePrefix is the key prefix of product images in the bucket
const productImagePrefix = "products/"

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

// ErrUnsupportedImageType is returned for content types other than common web images
var ErrUnsupportedImageType = shared.NewDomainError("INVALID_CONTENT_TYPE", "Only JPEG, PNG, WebP, GIF and AVIF images can be uploaded")

// UploadService issues presigned uploads for product images
type UploadService struct {
	storage ImageStorage
	expiry  time.Duration
	newID   func() uuid.UUID
}

// NewUploadService creates a new UploadService. A zero expiry uses DefaultUploadURLExpiry.
func NewUploadService(storage ImageStorage, expiry time.Duration) *UploadService {
	if expiry <= 0 {
		expiry = DefaultUploadURLExpiry
	}
	return &UploadService{storage: storage, expiry: expiry, newID: uuid.New}
}

// CreateUploadURL returns a presigned PUT URL under products/<uuid>.<ext>
// and the public URL to store in the product's images
func (s *UploadService) CreateUploadURL(ctx context.Context, req UploadURLRequest) (*UploadURLResponse, error) {
	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}

	key := fmt.Sprintf("%s%s.%s", productImagePrefix, s.newID(), ext)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("generate upload url: %w", err)
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}
