package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// List methods return products newest first.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll returns every product
	FindAll(ctx context.Context) ([]Product, error)

	// FindByCategoryIDs returns products whose legacy category or any linked
	// category is in categoryIDs
	FindByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]Product, error)

	// FindWithoutSlug returns products whose slug is empty
	FindWithoutSlug(ctx context.Context) ([]Product, error)

	// FindNeedingCategoryMigration returns products with a legacy category and no linked categories
	FindNeedingCategoryMigration(ctx context.Context) ([]Product, error)

	// CountNeedingCategoryMigration counts products FindNeedingCategoryMigration would return
	CountNeedingCategoryMigration(ctx context.Context) (int64, error)

	// ExistsBySlug checks whether a product other than excludeID uses slug
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a product and its category links
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
