package engagement

import (
	"context"
	"errors"

	"github.com/archerandash/storefront/internal/domain/engagement"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionService manages newsletter sign-ups
type SubscriptionService struct {
	repo   engagement.SubscriptionRepository
	logger *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(repo engagement.SubscriptionRepository, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{repo: repo, logger: logger}
}

// Subscribe adds email to the list. Subscribing twice is not an error.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (*SubscribeResult, error) {
	sub, err := engagement.NewSubscription(email)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		return &SubscribeResult{Subscription: ToSubscriptionResponse(existing), AlreadySubscribed: true}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		// A concurrent request inserted the same address first
		existing, findErr := s.repo.FindByEmail(ctx, sub.Email)
		if findErr != nil {
			return nil, findErr
		}
		return &SubscribeResult{Subscription: ToSubscriptionResponse(existing), AlreadySubscribed: true}, nil
	}

	s.logger.Info("New newsletter subscription", zap.String("subscription_id", sub.ID.String()))
	return &SubscribeResult{Subscription: ToSubscriptionResponse(sub)}, nil
}

// List returns all subscriptions, newest first
func (s *SubscriptionService) List(ctx context.Context) ([]SubscriptionResponse, error) {
	subs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		out[i] = ToSubscriptionResponse(&subs[i])
	}
	return out, nil
}

// Delete removes a subscription
func (s *SubscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
