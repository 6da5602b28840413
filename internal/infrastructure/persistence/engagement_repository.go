package persistence

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/engagement"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements engagement.SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

var _ engagement.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByEmail finds a subscription by its normalized email
func (r *GormSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*engagement.Subscription, error) {
	model, err := first[models.SubscriptionModel](ctx, r.db, "email = ?", email)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns subscriptions newest first
func (r *GormSubscriptionRepository) FindAll(ctx context.Context) ([]engagement.Subscription, error) {
	var rows []models.SubscriptionModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	subs := make([]engagement.Subscription, len(rows))
	for i := range rows {
		subs[i] = *rows[i].ToDomain()
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *engagement.Subscription) error {
	return translateError(r.db.WithContext(ctx).Save(models.SubscriptionModelFromDomain(sub)).Error)
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SubscriptionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormInquiryRepository implements engagement.InquiryRepository using GORM
type GormInquiryRepository struct {
	db *gorm.DB
}

var _ engagement.InquiryRepository = (*GormInquiryRepository)(nil)

// NewGormInquiryRepository creates a new GormInquiryRepository
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// FindByID finds an enquiry by its ID
func (r *GormInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.ContactInquiry, error) {
	model, err := first[models.ContactInquiryModel](ctx, r.db, "id = ?", id)
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns enquiries newest first, optionally limited to one status
func (r *GormInquiryRepository) FindAll(ctx context.Context, status engagement.InquiryStatus) ([]engagement.ContactInquiry, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var rows []models.ContactInquiryModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	inquiries := make([]engagement.ContactInquiry, len(rows))
	for i := range rows {
		inquiries[i] = *rows[i].ToDomain()
	}
	return inquiries, nil
}

// Save creates or updates an enquiry
func (r *GormInquiryRepository) Save(ctx context.Context, inquiry *engagement.ContactInquiry) error {
	return translateError(r.db.WithContext(ctx).Save(models.ContactInquiryModelFromDomain(inquiry)).Error)
}
