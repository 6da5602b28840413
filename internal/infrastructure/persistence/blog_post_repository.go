package persistence

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/content"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBlogPostRepository implements content.BlogPostRepository using GORM
type GormBlogPostRepository struct {
	db *gorm.DB
}

var _ content.BlogPostRepository = (*GormBlogPostRepository)(nil)

// NewGormBlogPostRepository creates a new GormBlogPostRepository
func NewGormBlogPostRepository(db *gorm.DB) *GormBlogPostRepository {
	return &GormBlogPostRepository{db: db}
}

// FindByID finds a post by its ID
func (r *GormBlogPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.BlogPost, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindBySlug finds a post by its slug
func (r *GormBlogPostRepository) FindBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

// FindAll returns posts by published date then creation date, newest first.
// Unpublished posts have no published date and sort last.
func (r *GormBlogPostRepository) FindAll(ctx context.Context, status content.PostStatus) ([]content.BlogPost, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.BlogPostModel
	if err := query.
		Order("CASE WHEN published_at IS NULL THEN 1 ELSE 0 END").
		Order("published_at DESC").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	posts := make([]content.BlogPost, len(rows))
	for i := range rows {
		posts[i] = *rows[i].ToDomain()
	}
	return posts, nil
}

// ExistsBySlug checks whether a post other than excludeID uses slug
func (r *GormBlogPostRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPostModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a post
func (r *GormBlogPostRepository) Save(ctx context.Context, post *content.BlogPost) error {
	return translateError(r.db.WithContext(ctx).Save(models.BlogPostModelFromDomain(post)).Error)
}

// Delete deletes a post
func (r *GormBlogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BlogPostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBlogPostRepository) findOne(ctx context.Context, query string, args ...any) (*content.BlogPost, error) {
	model, err := first[models.BlogPostModel](ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}
