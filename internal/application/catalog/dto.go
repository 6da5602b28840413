package catalog

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantInput is a size and its price
type VariantInput struct {
	Size  string          `json:"size" binding:"required,max=50"`
	Price decimal.Decimal `json:"price"`
}

// ProductRequest is the body of product create and update.
// Update replaces every editable field.
type ProductRequest struct {
	Title           string           `json:"title" binding:"required,max=200"`
	Description     string           `json:"description" binding:"required"`
	Price           *decimal.Decimal `json:"price"`
	Sizes           []string         `json:"sizes"`
	Category        *uuid.UUID       `json:"category"`
	Categories      []uuid.UUID      `json:"categories"`
	Variants        []VariantInput   `json:"variants" binding:"omitempty,dive"`
	Slug            string           `json:"slug" binding:"max=200"`
	MetaTitle       string           `json:"metaTitle" binding:"max=200"`
	MetaDescription string           `json:"metaDescription" binding:"max=500"`
	Keywords        string           `json:"keywords" binding:"max=500"`
	Images          []string         `json:"images"`
}

func (r ProductRequest) details() catalog.ProductDetails {
	variants := make([]catalog.Variant, len(r.Variants))
	for i, v := range r.Variants {
		variants[i] = catalog.Variant{Size: v.Size, Price: v.Price}
	}
	return catalog.ProductDetails{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		Sizes:           r.Sizes,
		CategoryID:      r.Category,
		CategoryIDs:     r.Categories,
		Variants:        variants,
		Slug:            r.Slug,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
		Images:          r.Images,
	}
}

// ProductResponse represents a product in API responses.
// Categories holds the effective categories: the legacy category stands in
// when no categories are linked.
type ProductResponse struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Price           *decimal.Decimal  `json:"price,omitempty"`
	Sizes           []string          `json:"sizes"`
	Category        *uuid.UUID        `json:"category,omitempty"`
	Categories      []uuid.UUID       `json:"categories"`
	Variants        []catalog.Variant `json:"variants"`
	Slug            string            `json:"slug"`
	MetaTitle       string            `json:"metaTitle"`
	MetaDescription string            `json:"metaDescription"`
	Keywords        string            `json:"keywords"`
	Images          []string          `json:"images"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	categories := p.EffectiveCategoryIDs()
	if categories == nil {
		categories = []uuid.UUID{}
	}
	variants := p.Variants
	if variants == nil {
		variants = []catalog.Variant{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		Sizes:           sizes,
		Category:        p.CategoryID,
		Categories:      categories,
		Variants:        variants,
		Slug:            p.Slug,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Keywords:        p.Keywords,
		Images:          images,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProductResponses converts a list of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// CategoryRef is the category summary embedded in product pages
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// OfferSummary is the aggregate offer used for product structured data
type OfferSummary struct {
	LowPrice      decimal.Decimal `json:"lowPrice"`
	HighPrice     decimal.Decimal `json:"highPrice"`
	OfferCount    int             `json:"offerCount"`
	PriceCurrency string          `json:"priceCurrency"`
}

// ProductPageResponse is a product resolved by id or slug.
// Redirect is set when the caller used the id of a product that has a slug.
type ProductPageResponse struct {
	Product        ProductResponse `json:"product"`
	Redirect       bool            `json:"redirect"`
	CanonicalPath  string          `json:"canonicalPath,omitempty"`
	Category       *CategoryRef    `json:"category,omitempty"`
	StructuredData *OfferSummary   `json:"structuredData"`
}

// CategoryRequest is the body of category create
type CategoryRequest struct {
	Name     string     `json:"name" binding:"required,max=100"`
	ParentID *uuid.UUID `json:"parentId"`
}

// UpdateCategoryRequest is the body of category update
type UpdateCategoryRequest struct {
	ID       uuid.UUID  `json:"id" binding:"required"`
	Name     string     `json:"name" binding:"required,max=100"`
	ParentID *uuid.UUID `json:"parentId"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parentId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a list of domain categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

// CollectionResponse is a category page: the category, its direct
// subcategories and every product in either
type CollectionResponse struct {
	Category      CategoryResponse   `json:"category"`
	Subcategories []CategoryResponse `json:"subcategories"`
	Products      []ProductResponse  `json:"products"`
}

// CollectionSummary is a top-level category with its children
type CollectionSummary struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// ShopQuery selects the shop view by category and subcategory slug
type ShopQuery struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
}

// ShopResponse is the shop page: top-level categories, the subcategories of
// the selected one and the filtered products
type ShopResponse struct {
	Categories    []CategoryResponse `json:"categories"`
	Subcategories []CategoryResponse `json:"subcategories"`
	Products      []ProductResponse  `json:"products"`
}

// UploadURLRequest asks for a presigned product image upload
type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// UploadURLResponse carries the presigned PUT URL and the URL to store on the product
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CategoryMigrationStatus reports how many products still use the legacy category
type CategoryMigrationStatus struct {
	NeedsMigration int64 `json:"needsMigration"`
}

// MigrationResult is the outcome for one product
type MigrationResult struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Status string    `json:"status"`
	Slug   string    `json:"slug,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

// Migration result statuses
const (
	MigrationMigrated = "migrated"
	MigrationUpdated  = "updated"
	MigrationSkipped  = "skipped"
	MigrationError    = "error"
)

// CategoryMigrationReport is the outcome of moving legacy categories
type CategoryMigrationReport struct {
	Migrated int               `json:"migrated"`
	Results  []MigrationResult `json:"results"`
}

// SlugBackfillSummary counts the outcomes of a slug backfill
type SlugBackfillSummary struct {
	TotalFound int `json:"totalFound"`
	Updated    int `json:"updated"`
	Errors     int `json:"errors"`
}

// SlugBackfillReport is the outcome of generating missing product slugs
type SlugBackfillReport struct {
	Message string              `json:"message"`
	Summary SlugBackfillSummary `json:"summary"`
	Details []MigrationResult   `json:"details"`
}
