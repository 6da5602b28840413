package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saveAttempts bounds how often a save is retried after losing a slug race
const saveAttempts = 3

// ErrUnknownCategory is returned when a product names a category that does not exist
var ErrUnknownCategory = shared.NewDomainError("INVALID_CATEGORY", "One or more categories do not exist")

// ServiceOption configures the catalog services
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	logger    *zap.Logger
	publisher shared.EventPublisher
	storage   ImageStorage
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithEventPublisher publishes product and category events after each save
func WithEventPublisher(publisher shared.EventPublisher) ServiceOption {
	return func(o *serviceOptions) {
		o.publisher = publisher
	}
}

// WithImageStorage lets product delete remove images hosted in the store's bucket
func WithImageStorage(storage ImageStorage) ServiceOption {
	return func(o *serviceOptions) {
		o.storage = storage
	}
}

func buildOptions(opts []ServiceOption) serviceOptions {
	o := serviceOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	serviceOptions
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	opts ...ServiceOption,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		serviceOptions: buildOptions(opts),
	}
}

// List returns every product, newest first
func (s *ProductService) List(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a product with a unique slug, generated from the title
// unless one is supplied
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, product); err != nil {
		return nil, err
	}

	base := product.Slug
	if base == "" {
		base = catalog.ProductSlug(product.Title)
	}
	if err := s.saveWithUniqueSlug(ctx, product, base); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the editable fields of a product. A blank slug keeps the
// current one, or is generated when the product has none.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	requested := catalog.Slugify(req.Slug)
	if err := product.Update(req.details()); err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, product); err != nil {
		return nil, err
	}

	switch {
	case product.Slug == "":
		err = s.saveWithUniqueSlug(ctx, product, catalog.ProductSlug(product.Title))
	case requested != "":
		err = s.saveWithUniqueSlug(ctx, product, requested)
	default:
		err = s.productRepo.Save(ctx, product)
	}
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product and any of its images hosted in the store's bucket.
// Image cleanup failures are logged.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.storage != nil {
		for _, image := range product.Images {
			key, ok := s.storage.KeyFromURL(image)
			if !ok {
				continue
			}
			if err := s.storage.DeleteObject(ctx, key); err != nil {
				s.logger.Warn("Failed to delete product image",
					zap.String("product_id", id.String()),
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}

	product.Raise(catalog.NewProductDeletedEvent(product))
	s.publishEvents(ctx, product)
	return nil
}

// Lookup resolves a product page by id or slug. A term that parses as a UUID
// is tried as an id first, then as a slug. A product without a slug gets one
// generated on the way; failing to save it does not fail the lookup.
func (s *ProductService) Lookup(ctx context.Context, term string) (*ProductPageResponse, error) {
	var (
		product *catalog.Product
		err     error
		byID    bool
	)
	if id, parseErr := uuid.Parse(term); parseErr == nil {
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		byID = product != nil
	}
	if product == nil {
		product, err = s.productRepo.FindBySlug(ctx, term)
		if err != nil {
			return nil, err
		}
	}

	if product.NeedsSlug() {
		s.healSlug(ctx, product)
	}

	page := &ProductPageResponse{Product: ToProductResponse(product)}
	if byID && product.Slug != "" && product.Slug != term {
		page.Redirect = true
		page.CanonicalPath = "/product/" + product.Slug
	}

	if categoryID := product.PrimaryCategoryID(); categoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *categoryID)
		switch {
		case err == nil:
			page.Category = &CategoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug}
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	low, high, count := product.PriceRange()
	page.StructuredData = &OfferSummary{
		LowPrice:      low,
		HighPrice:     high,
		OfferCount:    count,
		PriceCurrency: sales.DefaultCurrency,
	}
	return page, nil
}

// checkCategories makes sure every category the product is filed under exists
func (s *ProductService) checkCategories(ctx context.Context, product *catalog.Product) error {
	ids := product.EffectiveCategoryIDs()
	if len(ids) == 0 {
		return nil
	}
	found, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]bool, len(found))
	for _, c := range found {
		known[c.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			s.logger.Debug("Product references unknown category", zap.String("category_id", id.String()))
			return ErrUnknownCategory
		}
	}
	return nil
}

func (s *ProductService) healSlug(ctx context.Context, product *catalog.Product) {
	if err := s.saveWithUniqueSlug(ctx, product, catalog.ProductSlug(product.Title)); err != nil {
		product.AssignSlug("")
		s.logger.Warn("Failed to backfill product slug",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
}

// saveWithUniqueSlug picks the first free slug derived from base and saves.
// A unique violation means another writer took the slug in between, so the
// search runs again.
func (s *ProductService) saveWithUniqueSlug(ctx context.Context, product *catalog.Product, base string) error {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return s.productRepo.ExistsBySlug(ctx, candidate, product.ID)
	}

	var err error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		var slug string
		slug, err = catalog.UniqueSlug(ctx, base, exists)
		if err != nil {
			return err
		}
		product.AssignSlug(slug)

		err = s.productRepo.Save(ctx, product)
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return err
		}
	}
	return fmt.Errorf("save product %s: %w", product.ID, err)
}

func (s *ProductService) publishEvents(ctx context.Context, aggregate shared.Aggregate) {
	publishEvents(ctx, s.publisher, s.logger, aggregate)
}

// publishEvents publishes and clears the pending events of aggregate.
// Publish failures are logged; the write has already succeeded.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.Aggregate) {
	events := aggregate.PullEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}
