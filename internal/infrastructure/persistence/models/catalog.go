package models

import (
	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate.
// CategoryIDs live in product_categories and are loaded by the repository.
type ProductModel struct {
	BaseModel
	Title           string            `gorm:"type:varchar(200);not null"`
	Description     string            `gorm:"type:text;not null"`
	Price           *decimal.Decimal  `gorm:"type:decimal(10,2)"`
	Sizes           []string          `gorm:"type:jsonb;serializer:json"`
	CategoryID      *uuid.UUID        `gorm:"type:uuid;index"`
	Variants        []catalog.Variant `gorm:"type:jsonb;serializer:json"`
	Slug            string            `gorm:"type:varchar(250);not null;default:'';index"`
	MetaTitle       string            `gorm:"type:varchar(250)"`
	MetaDescription string            `gorm:"type:text"`
	Keywords        string            `gorm:"type:text"`
	Images          []string          `gorm:"type:jsonb;serializer:json"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain(categoryIDs []uuid.UUID) *catalog.Product {
	if categoryIDs == nil {
		categoryIDs = []uuid.UUID{}
	}
	return &catalog.Product{
		BaseAggregateRoot: m.aggregate(),
		Title:             m.Title,
		Description:       m.Description,
		Price:             m.Price,
		Sizes:             nonNilStrings(m.Sizes),
		CategoryID:        m.CategoryID,
		CategoryIDs:       categoryIDs,
		Variants:          nonNilVariants(m.Variants),
		Slug:              m.Slug,
		MetaTitle:         m.MetaTitle,
		MetaDescription:   m.MetaDescription,
		Keywords:          m.Keywords,
		Images:            nonNilStrings(m.Images),
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.BaseModel = baseFrom(p.BaseEntity)
	m.Title = p.Title
	m.Description = p.Description
	m.Price = p.Price
	m.Sizes = p.Sizes
	m.CategoryID = p.CategoryID
	m.Variants = p.Variants
	m.Slug = p.Slug
	m.MetaTitle = p.MetaTitle
	m.MetaDescription = p.MetaDescription
	m.Keywords = p.Keywords
	m.Images = p.Images
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductCategoryModel links a product to one of its categories. Position
// keeps the order the categories were assigned in; the first is primary.
type ProductCategoryModel struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}

// CategoryModel is the persistence model for the Category aggregate.
type CategoryModel struct {
	BaseModel
	Name     string     `gorm:"type:varchar(100);not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
	Slug     string     `gorm:"type:varchar(120);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.aggregate(),
		Name:              m.Name,
		ParentID:          m.ParentID,
		Slug:              m.Slug,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{
		Name:     c.Name,
		ParentID: c.ParentID,
		Slug:     c.Slug,
	}
	m.BaseModel = baseFrom(c.BaseEntity)
	return m
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilVariants(v []catalog.Variant) []catalog.Variant {
	if v == nil {
		return []catalog.Variant{}
	}
	return v
}
