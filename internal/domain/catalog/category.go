package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

const maxCategoryNameLength = 100

// Category groups products. Categories form a two-level hierarchy in practice:
// top-level collections with optional subcategories.
type Category struct {
	shared.BaseAggregateRoot
	Name     string
	ParentID *uuid.UUID
	Slug     string
}

// NewCategory creates a category. The slug is derived from the name.
func NewCategory(name string, parentID *uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	slug, err := categorySlug(name)
	if err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}
	if err := category.SetParent(parentID); err != nil {
		return nil, err
	}

	category.Raise(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename changes the name and regenerates the slug
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	slug, err := categorySlug(name)
	if err != nil {
		return err
	}

	c.Name = name
	c.Slug = slug
	c.Touch()

	return nil
}

// SetParent moves the category under parentID, or to the top level when nil
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.Touch()
	return nil
}

// IsTopLevel returns true if the category has no parent
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// CategorySlug returns the slug a category name maps to
func CategorySlug(name string) string {
	return Slugify(name)
}

func categorySlug(name string) (string, error) {
	if name == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return "", shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	slug := CategorySlug(name)
	if slug == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Category name must contain letters or digits")
	}
	return slug, nil
}
