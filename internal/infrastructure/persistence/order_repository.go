package persistence

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ sales.OrderRepository = (*GormOrderRepository)(nil)

// orderSortColumns are the columns the admin order list may sort on
var orderSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"order_date": true,
	"total":      true,
	"status":     true,
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	model, err := first[models.OrderModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPaypalOrderID finds an order by its PayPal order ID
func (r *GormOrderRepository) FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*sales.Order, error) {
	model, err := first[models.OrderModel](ctx, r.db, "paypal_order_id = ?", paypalOrderID)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)

	query = query.Order(filter.OrderClause(orderSortColumns, "created_at")).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]sales.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates or updates an order. A second order for the same PayPal
// order ID returns shared.ErrAlreadyExists.
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return translateError(r.db.WithContext(ctx).Save(models.OrderModelFromDomain(order)).Error)
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("customer_email LIKE ? OR customer_name LIKE ? OR paypal_order_id LIKE ?", like, like, like)
	}
	return query
}
