package engagement

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	FindByEmail(ctx context.Context, email string) (*Subscription, error)
	// FindAll returns subscriptions newest first
	FindAll(ctx context.Context) ([]Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InquiryRepository defines the interface for contact enquiry persistence
type InquiryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactInquiry, error)
	// FindAll returns enquiries newest first, optionally limited to one status
	FindAll(ctx context.Context, status InquiryStatus) ([]ContactInquiry, error)
	Save(ctx context.Context, inquiry *ContactInquiry) error
}
