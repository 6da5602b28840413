package models

import (
	"github.com/archerandash/storefront/internal/domain/engagement"
)

// SubscriptionModel is the persistence model for newsletter subscriptions.
type SubscriptionModel struct {
	BaseModel
	Email string `gorm:"type:varchar(254);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription.
func (m *SubscriptionModel) ToDomain() *engagement.Subscription {
	return &engagement.Subscription{
		BaseEntity: m.entity(),
		Email:      m.Email,
	}
}

// SubscriptionModelFromDomain creates a new persistence model from a domain Subscription.
func SubscriptionModelFromDomain(s *engagement.Subscription) *SubscriptionModel {
	m := &SubscriptionModel{Email: s.Email}
	m.BaseModel = baseFrom(s.BaseEntity)
	return m
}

// ContactInquiryModel is the persistence model for contact form enquiries.
type ContactInquiryModel struct {
	BaseModel
	Name    string                   `gorm:"type:varchar(200);not null"`
	Phone   string                   `gorm:"type:varchar(50);not null"`
	Email   string                   `gorm:"type:varchar(254);not null"`
	Reason  engagement.InquiryReason `gorm:"type:varchar(50);not null"`
	Message string                   `gorm:"type:text;not null"`
	Status  engagement.InquiryStatus `gorm:"type:varchar(20);not null;default:'new';index"`
}

// TableName returns the table name for GORM
func (ContactInquiryModel) TableName() string {
	return "contact_inquiries"
}

// ToDomain converts the persistence model to a domain ContactInquiry.
func (m *ContactInquiryModel) ToDomain() *engagement.ContactInquiry {
	return &engagement.ContactInquiry{
		BaseEntity: m.entity(),
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
		Reason:     m.Reason,
		Message:    m.Message,
		Status:     m.Status,
	}
}

// ContactInquiryModelFromDomain creates a new persistence model from a domain ContactInquiry.
func ContactInquiryModelFromDomain(i *engagement.ContactInquiry) *ContactInquiryModel {
	m := &ContactInquiryModel{
		Name:    i.Name,
		Phone:   i.Phone,
		Email:   i.Email,
		Reason:  i.Reason,
		Message: i.Message,
		Status:  i.Status,
	}
	m.BaseModel = baseFrom(i.BaseEntity)
	return m
}
