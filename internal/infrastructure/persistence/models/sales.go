package models

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
// Customer address and lines are stored as JSON documents.
type OrderModel struct {
	BaseModel
	PaypalOrderID   string            `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName    string            `gorm:"type:varchar(200);not null"`
	CustomerEmail   string            `gorm:"type:varchar(254);not null;index"`
	CustomerAddress *sales.Address    `gorm:"type:jsonb;serializer:json"`
	Total           decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Currency        string            `gorm:"type:varchar(3);not null;default:'GBP'"`
	Products        []sales.OrderLine `gorm:"type:jsonb;serializer:json"`
	Status          sales.OrderStatus `gorm:"type:varchar(20);not null;default:'paid';index"`
	OrderDate       time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *sales.Order {
	lines := m.Products
	if lines == nil {
		lines = []sales.OrderLine{}
	}
	return &sales.Order{
		BaseAggregateRoot: m.aggregate(),
		PaypalOrderID:     m.PaypalOrderID,
		Customer: sales.Customer{
			Name:    m.CustomerName,
			Email:   m.CustomerEmail,
			Address: m.CustomerAddress,
		},
		Total:     m.Total,
		Currency:  m.Currency,
		Products:  lines,
		Status:    m.Status,
		OrderDate: m.OrderDate,
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *sales.Order) *OrderModel {
	m := &OrderModel{
		PaypalOrderID:   o.PaypalOrderID,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerAddress: o.Customer.Address,
		Total:           o.Total,
		Currency:        o.Currency,
		Products:        o.Products,
		Status:          o.Status,
		OrderDate:       o.OrderDate,
	}
	m.BaseModel = baseFrom(o.BaseEntity)
	return m
}
