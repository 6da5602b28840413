package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindByIDs finds categories by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Category, error)

	// FindAll returns every category sorted by name
	FindAll(ctx context.Context) ([]Category, error)

	// FindTopLevel returns categories without a parent, sorted by name
	FindTopLevel(ctx context.Context) ([]Category, error)

	// FindChildren returns the direct subcategories of parentID, sorted by name
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// ExistsBySlug checks whether a category other than excludeID uses slug.
	// Pass uuid.Nil to check all categories.
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category, detaching its products and promoting its children
	Delete(ctx context.Context, id uuid.UUID) error
}
