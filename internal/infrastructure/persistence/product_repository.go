package persistence

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindBySlug finds a product by its slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if slug == "" {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, "slug = ?", slug)
}

// FindAll returns every product, newest first
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return r.findMany(ctx, r.db.WithContext(ctx))
}

// FindByCategoryIDs returns products linked to any of categoryIDs, through
// either the join table or the legacy category column
func (r *GormProductRepository) FindByCategoryIDs(ctx context.Context, categoryIDs []uuid.UUID) ([]catalog.Product, error) {
	if len(categoryIDs) == 0 {
		return []catalog.Product{}, nil
	}
	linked := r.db.Model(&models.ProductCategoryModel{}).
		Select("product_id").
		Where("category_id IN ?", categoryIDs)

	query := r.db.WithContext(ctx).
		Where("id IN (?) OR category_id IN ?", linked, categoryIDs)
	return r.findMany(ctx, query)
}

// FindWithoutSlug returns products whose slug is empty
func (r *GormProductRepository) FindWithoutSlug(ctx context.Context) ([]catalog.Product, error) {
	return r.findMany(ctx, r.db.WithContext(ctx).Where("slug = '' OR slug IS NULL"))
}

// FindNeedingCategoryMigration returns products with a legacy category and no linked categories
func (r *GormProductRepository) FindNeedingCategoryMigration(ctx context.Context) ([]catalog.Product, error) {
	return r.findMany(ctx, r.needingMigration(r.db.WithContext(ctx)))
}

// CountNeedingCategoryMigration counts products with a legacy category and no linked categories
func (r *GormProductRepository) CountNeedingCategoryMigration(ctx context.Context) (int64, error) {
	var count int64
	err := r.needingMigration(r.db.WithContext(ctx).Model(&models.ProductModel{})).Count(&count).Error
	return count, err
}

func (r *GormProductRepository) needingMigration(tx *gorm.DB) *gorm.DB {
	return tx.Where("category_id IS NOT NULL AND NOT EXISTS (?)",
		r.db.Model(&models.ProductCategoryModel{}).
			Select("1").
			Where("product_categories.product_id = products.id"))
}

// ExistsBySlug checks whether a product other than excludeID uses slug
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product and replaces its category links
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductCategoryModel{}).Error; err != nil {
			return err
		}
		if len(product.CategoryIDs) == 0 {
			return nil
		}
		links := make([]models.ProductCategoryModel, 0, len(product.CategoryIDs))
		for i, categoryID := range product.CategoryIDs {
			links = append(links, models.ProductCategoryModel{ProductID: product.ID, CategoryID: categoryID, Position: i})
		}
		return tx.Create(&links).Error
	})
	return translateError(err)
}

// Delete deletes a product and its category links
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategoryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormProductRepository) findOne(ctx context.Context, query string, args ...any) (*catalog.Product, error) {
	model, err := first[models.ProductModel](ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	links, err := r.loadCategoryIDs(ctx, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return model.ToDomain(links[model.ID]), nil
}

func (r *GormProductRepository) findMany(ctx context.Context, query *gorm.DB) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	links, err := r.loadCategoryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain(links[rows[i].ID])
	}
	return products, nil
}

// loadCategoryIDs returns the linked category IDs keyed by product ID
func (r *GormProductRepository) loadCategoryIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var links []models.ProductCategoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("position").
		Find(&links).Error; err != nil {
		return nil, err
	}
	for _, link := range links {
		result[link.ProductID] = append(result[link.ProductID], link.CategoryID)
	}
	return result, nil
}
