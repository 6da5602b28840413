package engagement

import (
	"strings"

	"github.com/archerandash/storefront/internal/domain/shared"
)

// InquiryReason is the topic a visitor picks on the contact form
type InquiryReason string

const (
	ReasonProductEnquiry InquiryReason = "Product Enquiry"
	ReasonOrderStatus    InquiryReason = "Order Status"
	ReasonPartnership    InquiryReason = "Partnership"
	ReasonOther          InquiryReason = "Other"
)

// IsValid checks if the reason is one offered on the form
func (r InquiryReason) IsValid() bool {
	switch r {
	case ReasonProductEnquiry, ReasonOrderStatus, ReasonPartnership, ReasonOther:
		return true
	}
	return false
}

// InquiryStatus tracks how far an enquiry has been handled
type InquiryStatus string

const (
	InquiryStatusNew      InquiryStatus = "new"
	InquiryStatusRead     InquiryStatus = "read"
	InquiryStatusReplied  InquiryStatus = "replied"
	InquiryStatusArchived InquiryStatus = "archived"
)

// IsValid checks if the status is a known value
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusRead, InquiryStatusReplied, InquiryStatusArchived:
		return true
	}
	return false
}

// ContactInquiry is a message left through the contact form
type ContactInquiry struct {
	shared.BaseEntity
	Name    string
	Phone   string
	Email   string
	Reason  InquiryReason
	Message string
	Status  InquiryStatus
}

// InquiryDetails carries the submitted form fields
type InquiryDetails struct {
	Name    string
	Phone   string
	Email   string
	Reason  InquiryReason
	Message string
}

// NewContactInquiry validates the form and creates a new enquiry
func NewContactInquiry(d InquiryDetails) (*ContactInquiry, error) {
	name := strings.TrimSpace(d.Name)
	phone := strings.TrimSpace(d.Phone)
	message := strings.TrimSpace(d.Message)
	if name == "" || phone == "" || message == "" || strings.TrimSpace(d.Email) == "" {
		return nil, shared.NewDomainError("INVALID_INQUIRY", "All fields are required")
	}
	email, err := NormalizeEmail(d.Email)
	if err != nil {
		return nil, err
	}
	if !d.Reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Invalid reason")
	}
	if len(message) > 5000 {
		return nil, shared.NewDomainError("INVALID_INQUIRY", "Message cannot exceed 5000 characters")
	}

	return &ContactInquiry{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Email:      email,
		Reason:     d.Reason,
		Message:    message,
		Status:     InquiryStatusNew,
	}, nil
}

// ChangeStatus moves the enquiry to another handling status
func (i *ContactInquiry) ChangeStatus(status InquiryStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid status")
	}
	i.Status = status
	i.Touch()
	return nil
}
