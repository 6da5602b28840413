package engagement

import (
	"context"
	"testing"

	"github.com/archerandash/storefront/internal/domain/engagement"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByEmail(ctx context.Context, email string) (*engagement.Subscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAll(ctx context.Context) ([]engagement.Subscription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]engagement.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *engagement.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockInquiryRepository struct {
	mock.Mock
}

func (m *MockInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.ContactInquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.ContactInquiry), args.Error(1)
}

func (m *MockInquiryRepository) FindAll(ctx context.Context, status engagement.InquiryStatus) ([]engagement.ContactInquiry, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]engagement.ContactInquiry), args.Error(1)
}

func (m *MockInquiryRepository) Save(ctx context.Context, inquiry *engagement.ContactInquiry) error {
	return m.Called(ctx, inquiry).Error(0)
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("new address", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		svc := NewSubscriptionService(repo, nil)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*engagement.Subscription")).Return(nil)

		result, err := svc.Subscribe(ctx, "  Ada@Example.com ")
		require.NoError(t, err)
		assert.False(t, result.AlreadySubscribed)
		assert.Equal(t, "ada@example.com", result.Subscription.Email)
	})

	t.Run("existing address", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		svc := NewSubscriptionService(repo, nil)
		existing, err := engagement.NewSubscription("ada@example.com")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(existing, nil)

		result, err := svc.Subscribe(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, result.AlreadySubscribed)
		assert.Equal(t, existing.ID, result.Subscription.ID)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("concurrent insert", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		svc := NewSubscriptionService(repo, nil)
		winner, err := engagement.NewSubscription("ada@example.com")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(nil, shared.ErrNotFound).Once()
		repo.On("FindByEmail", ctx, "ada@example.com").Return(winner, nil).Once()
		repo.On("Save", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		result, err := svc.Subscribe(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.True(t, result.AlreadySubscribed)
	})

	t.Run("invalid address", func(t *testing.T) {
		svc := NewSubscriptionService(new(MockSubscriptionRepository), nil)
		_, err := svc.Subscribe(ctx, "not-an-email")
		require.Error(t, err)
		assert.Equal(t, "Valid email is required", err.Error())
	})
}

func TestSubscriptionService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, nil)

	sub, err := engagement.NewSubscription("ada@example.com")
	require.NoError(t, err)
	repo.On("FindAll", ctx).Return([]engagement.Subscription{*sub}, nil)
	repo.On("Delete", ctx, sub.ID).Return(nil)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ada@example.com", list[0].Email)
	require.NoError(t, svc.Delete(ctx, sub.ID))
}

func validInquiry() InquiryRequest {
	return InquiryRequest{
		Name:    "Grace Hopper",
		Phone:   "07700 900123",
		Email:   "grace@example.com",
		Reason:  "Product Enquiry",
		Message: "Do you ship the large canvases to Ireland?",
	}
}

func TestInquiryService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInquiryRepository)
	svc := NewInquiryService(repo, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := svc.Submit(ctx, validInquiry())
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Status)
	assert.Equal(t, "Product Enquiry", resp.Reason)

	bad := validInquiry()
	bad.Reason = "Complaint"
	_, err = svc.Submit(ctx, bad)
	require.Error(t, err)

	missing := validInquiry()
	missing.Phone = ""
	_, err = svc.Submit(ctx, missing)
	require.Error(t, err)
	assert.Equal(t, "All fields are required", err.Error())
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestInquiryService_ListAndUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInquiryRepository)
	svc := NewInquiryService(repo, nil)

	inquiry, err := engagement.NewContactInquiry(validInquiry().details())
	require.NoError(t, err)

	repo.On("FindAll", ctx, engagement.InquiryStatusNew).Return([]engagement.ContactInquiry{*inquiry}, nil)
	list, err := svc.List(ctx, "new")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.List(ctx, "spam")
	assert.ErrorIs(t, err, ErrInvalidInquiryStatus)

	repo.On("FindByID", ctx, inquiry.ID).Return(inquiry, nil)
	repo.On("Save", ctx, inquiry).Return(nil)
	resp, err := svc.UpdateStatus(ctx, inquiry.ID, "replied")
	require.NoError(t, err)
	assert.Equal(t, "replied", resp.Status)

	_, err = svc.UpdateStatus(ctx, inquiry.ID, "lost")
	require.Error(t, err)
}
