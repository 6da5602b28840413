package engagement

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/engagement"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidInquiryStatus is returned when listing by an unknown status
var ErrInvalidInquiryStatus = shared.NewDomainError("INVALID_STATUS", "Invalid status")

// InquiryService handles contact form enquiries
type InquiryService struct {
	repo   engagement.InquiryRepository
	logger *zap.Logger
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(repo engagement.InquiryRepository, logger *zap.Logger) *InquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{repo: repo, logger: logger}
}

// Submit stores a contact form submission
func (s *InquiryService) Submit(ctx context.Context, req InquiryRequest) (*InquiryResponse, error) {
	inquiry, err := engagement.NewContactInquiry(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inquiry); err != nil {
		return nil, err
	}

	s.logger.Info("Contact enquiry received",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("reason", string(inquiry.Reason)),
	)
	resp := ToInquiryResponse(inquiry)
	return &resp, nil
}

// List returns enquiries newest first. An empty status returns all.
func (s *InquiryService) List(ctx context.Context, status string) ([]InquiryResponse, error) {
	st := engagement.InquiryStatus(status)
	if st != "" && !st.IsValid() {
		return nil, ErrInvalidInquiryStatus
	}
	inquiries, err := s.repo.FindAll(ctx, st)
	if err != nil {
		return nil, err
	}
	out := make([]InquiryResponse, len(inquiries))
	for i := range inquiries {
		out[i] = ToInquiryResponse(&inquiries[i])
	}
	return out, nil
}

// UpdateStatus marks an enquiry as read, replied or archived
func (s *InquiryService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*InquiryResponse, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inquiry.ChangeStatus(engagement.InquiryStatus(status)); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, inquiry); err != nil {
		return nil, err
	}
	resp := ToInquiryResponse(inquiry)
	return &resp, nil
}
