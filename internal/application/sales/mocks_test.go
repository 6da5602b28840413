package sales

import (
	"context"
	"sync"
	"time"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of sales.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*sales.Order, error) {
	args := m.Called(ctx, paypalOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockPaymentGateway is a mock implementation of sales.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req *sales.CreatePaymentRequest) (*sales.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CreatePaymentResponse), args.Error(1)
}

func (m *MockPaymentGateway) CaptureOrder(ctx context.Context, orderID string) (*sales.CaptureResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.CaptureResult), args.Error(1)
}

type productsByID map[uuid.UUID]*catalog.Product

func (p productsByID) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if product, ok := p[id]; ok {
		return product, nil
	}
	return nil, shared.ErrNotFound
}

type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string]sales.Cart
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string]sales.Cart)}
}

func (s *memoryCartStore) Load(_ context.Context, id string) (*sales.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[id]; ok {
		c.Items = append([]sales.CartItem(nil), c.Items...)
		return &c, nil
	}
	return sales.NewCart(id), nil
}

func (s *memoryCartStore) Save(_ context.Context, cart *sales.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cart
	c.Items = append([]sales.CartItem(nil), cart.Items...)
	s.carts[cart.ID] = c
	return nil
}

func (s *memoryCartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	return nil
}

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{keys: make(map[string]bool)}
}

func (s *memoryIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys[key] {
		return false, nil
	}
	s.keys[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[key], nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *memoryIdempotencyStore) Close() error { return nil }

type recordingMetrics struct {
	mu            sync.Mutex
	ordersPlaced  int
	revenue       decimal.Decimal
	cartAdditions int
	failures      []string
	statuses      []string
}

func (m *recordingMetrics) RecordOrderPlaced(_ context.Context, total decimal.Decimal, _ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ordersPlaced++
	m.revenue = m.revenue.Add(total)
}

func (m *recordingMetrics) RecordCartAddition(_ context.Context, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cartAdditions += quantity
}

func (m *recordingMetrics) RecordCheckoutFailure(_ context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, reason)
}

func (m *recordingMetrics) RecordOrderStatusChange(_ context.Context, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
