package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxTitleLength = 200

// Variant is a purchasable size of a product with its own price
type Variant struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// Product is a catalog item. Price, Sizes and CategoryID are legacy fields
// kept for records created before variants and multi-category support.
type Product struct {
	shared.BaseAggregateRoot
	Title       string
	Description string

	Price      *decimal.Decimal
	Sizes      []string
	CategoryID *uuid.UUID

	CategoryIDs []uuid.UUID
	Variants    []Variant
	Slug        string

	MetaTitle       string
	MetaDescription string
	Keywords        string

	Images []string
}

// ProductDetails carries the editable fields of a product
type ProductDetails struct {
	Title           string
	Description     string
	Price           *decimal.Decimal
	Sizes           []string
	CategoryID      *uuid.UUID
	CategoryIDs     []uuid.UUID
	Variants        []Variant
	Slug            string
	MetaTitle       string
	MetaDescription string
	Keywords        string
	Images          []string
}

// NewProduct creates a new product. When CategoryIDs is set the legacy
// CategoryID is dropped. The slug is normalised but not yet made unique.
func NewProduct(details ProductDetails) (*Product, error) {
	if err := details.validate(); err != nil {
		return nil, err
	}

	product := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	product.apply(details)
	if len(product.CategoryIDs) > 0 {
		product.CategoryID = nil
	}

	product.Raise(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces the editable fields. A blank slug keeps the current one.
func (p *Product) Update(details ProductDetails) error {
	if err := details.validate(); err != nil {
		return err
	}

	current := p.Slug
	p.apply(details)
	if p.Slug == "" {
		p.Slug = current
	}
	p.Touch()

	p.Raise(NewProductUpdatedEvent(p))

	return nil
}

// AssignSlug sets a slug that the caller has already checked for uniqueness
func (p *Product) AssignSlug(slug string) {
	p.Slug = slug
	p.Touch()
}

// NeedsSlug reports whether the product has a title but no slug yet
func (p *Product) NeedsSlug() bool {
	return p.Slug == "" && strings.TrimSpace(p.Title) != ""
}

// EffectiveCategoryIDs returns CategoryIDs, falling back to the legacy category
func (p *Product) EffectiveCategoryIDs() []uuid.UUID {
	if len(p.CategoryIDs) == 0 && p.CategoryID != nil {
		return []uuid.UUID{*p.CategoryID}
	}
	return p.CategoryIDs
}

// PrimaryCategoryID returns the category used for breadcrumbs, if any
func (p *Product) PrimaryCategoryID() *uuid.UUID {
	if p.CategoryID != nil {
		return p.CategoryID
	}
	if len(p.CategoryIDs) > 0 {
		id := p.CategoryIDs[0]
		return &id
	}
	return nil
}

// NeedsCategoryMigration reports whether only the legacy category is set
func (p *Product) NeedsCategoryMigration() bool {
	return p.CategoryID != nil && len(p.CategoryIDs) == 0
}

// MigrateLegacyCategory moves the legacy category into CategoryIDs.
// It returns false when there is nothing to migrate.
func (p *Product) MigrateLegacyCategory() bool {
	if !p.NeedsCategoryMigration() {
		return false
	}
	p.CategoryIDs = []uuid.UUID{*p.CategoryID}
	p.CategoryID = nil
	p.Touch()
	return true
}

// LowestPrice returns the cheapest variant price, or the legacy price when
// there are no variants. ok is false when the product has no usable price.
func (p *Product) LowestPrice() (price decimal.Decimal, ok bool) {
	if len(p.Variants) > 0 {
		price = p.Variants[0].Price
		for _, v := range p.Variants[1:] {
			if v.Price.LessThan(price) {
				price = v.Price
			}
		}
		return price, price.IsPositive()
	}
	if p.Price != nil && p.Price.IsPositive() {
		return *p.Price, true
	}
	return decimal.Zero, false
}

// PriceRange returns the lowest and highest variant prices and the variant count
func (p *Product) PriceRange() (low, high decimal.Decimal, count int) {
	if len(p.Variants) == 0 {
		return decimal.Zero, decimal.Zero, 0
	}
	low, high = p.Variants[0].Price, p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(low) {
			low = v.Price
		}
		if v.Price.GreaterThan(high) {
			high = v.Price
		}
	}
	return low, high, len(p.Variants)
}

// FindVariant returns the variant for a size
func (p *Product) FindVariant(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}

func (p *Product) apply(d ProductDetails) {
	p.Title = strings.TrimSpace(d.Title)
	p.Description = d.Description
	p.Price = d.Price
	p.Sizes = d.Sizes
	p.CategoryID = d.CategoryID
	p.CategoryIDs = dedupeIDs(d.CategoryIDs)
	p.Variants = d.Variants
	p.Slug = Slugify(d.Slug)
	p.MetaTitle = d.MetaTitle
	p.MetaDescription = d.MetaDescription
	p.Keywords = d.Keywords
	p.Images = cleanImages(d.Images)
}

func (d ProductDetails) validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	if strings.TrimSpace(d.Description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if d.Price != nil && d.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	for _, v := range d.Variants {
		if strings.TrimSpace(v.Size) == "" {
			return shared.NewDomainError("INVALID_VARIANT", "Variant size cannot be empty")
		}
		if v.Price.IsNegative() {
			return shared.NewDomainError("INVALID_VARIANT", "Variant price cannot be negative")
		}
	}
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
