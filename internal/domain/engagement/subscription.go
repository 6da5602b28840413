package engagement

import (
	"strings"

	"github.com/archerandash/storefront/internal/domain/shared"
)

// Subscription is a newsletter sign-up
type Subscription struct {
	shared.BaseEntity
	Email string
}

// NewSubscription creates a subscription for email, lowercased and trimmed
func NewSubscription(email string) (*Subscription, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &Subscription{
		BaseEntity: shared.NewBaseEntity(),
		Email:      normalized,
	}, nil
}

// NormalizeEmail lowercases and trims an address. The address must contain @.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", shared.NewDomainError("INVALID_EMAIL", "Valid email is required")
	}
	if len(email) > 254 {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	return email, nil
}
