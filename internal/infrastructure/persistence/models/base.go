package models

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel is the id and timestamp columns every table shares
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseFrom(e shared.BaseEntity) BaseModel {
	return BaseModel(e)
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity(m)
}

// aggregate rebuilds an aggregate root with no pending events
func (m BaseModel) aggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.entity()}
}

// All returns every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&CategoryModel{},
		&ProductModel{},
		&ProductCategoryModel{},
		&BlogPostModel{},
		&OrderModel{},
		&SubscriptionModel{},
		&ContactInquiryModel{},
		&UserModel{},
	}
}
