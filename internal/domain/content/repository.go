package content

import (
	"context"

	"github.com/google/uuid"
)

// BlogPostRepository defines the interface for blog post persistence
type BlogPostRepository interface {
	// FindByID finds a post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*BlogPost, error)

	// FindBySlug finds a post by its slug
	FindBySlug(ctx context.Context, slug string) (*BlogPost, error)

	// FindAll returns posts ordered by published date then creation date, newest first.
	// An empty status returns every post.
	FindAll(ctx context.Context, status PostStatus) ([]BlogPost, error)

	// ExistsBySlug checks whether a post other than excludeID uses slug
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a post
	Save(ctx context.Context, post *BlogPost) error

	// Delete deletes a post
	Delete(ctx context.Context, id uuid.UUID) error
}
