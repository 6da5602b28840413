package engagement

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/engagement"
	"github.com/google/uuid"
)

// SubscribeRequest is the body of POST /subscriptions
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubscribeResult reports whether the address was already on the list
type SubscribeResult struct {
	Subscription      SubscriptionResponse `json:"subscription"`
	AlreadySubscribed bool                 `json:"alreadySubscribed"`
}

// ToSubscriptionResponse converts a domain subscription
func ToSubscriptionResponse(s *engagement.Subscription) SubscriptionResponse {
	return SubscriptionResponse{ID: s.ID, Email: s.Email, CreatedAt: s.CreatedAt}
}

// InquiryRequest is the body of POST /contact
type InquiryRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (r InquiryRequest) details() engagement.InquiryDetails {
	return engagement.InquiryDetails{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Reason:  engagement.InquiryReason(r.Reason),
		Message: r.Message,
	}
}

// UpdateInquiryStatusRequest is the body of PATCH /contact/:id
type UpdateInquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// InquiryResponse represents a contact enquiry in API responses
type InquiryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToInquiryResponse converts a domain enquiry
func ToInquiryResponse(i *engagement.ContactInquiry) InquiryResponse {
	return InquiryResponse{
		ID:        i.ID,
		Name:      i.Name,
		Phone:     i.Phone,
		Email:     i.Email,
		Reason:    string(i.Reason),
		Message:   i.Message,
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
