package sales

import (
	"context"
	"errors"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrOrderExists is returned when an order is already recorded for a PayPal order
var ErrOrderExists = shared.NewDomainError("ORDER_EXISTS", "Order already exists")

// OrderService handles order records
type OrderService struct {
	orderRepo      sales.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo sales.OrderRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// SetEventPublisher sets the event publisher for OrderPlaced and OrderStatusChanged
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record stores a paid order reported by the browser after approval
func (s *OrderService) Record(ctx context.Context, req RecordOrderRequest) (*OrderResponse, error) {
	existing, err := s.orderRepo.FindByPaypalOrderID(ctx, req.PaypalOrderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOrderExists
	}

	order, err := sales.NewOrder(req.details())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, order); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrOrderExists
		}
		return nil, err
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders, newest first by default
func (s *OrderService) List(ctx context.Context, q OrderListQuery) (*shared.Paginated[OrderResponse], error) {
	filter := q.filter()
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(items, total, filter)
	return &page, nil
}

// Get returns an order by ID
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves an order to a new fulfilment status
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeStatus(sales.OrderStatus(status)); err != nil {
		return nil, err
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// Delete removes an order
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

// findByPaypalOrderID returns nil without error when no order is recorded
func (s *OrderService) findByPaypalOrderID(ctx context.Context, paypalOrderID string) (*sales.Order, error) {
	order, err := s.orderRepo.FindByPaypalOrderID(ctx, paypalOrderID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return order, err
}

func (s *OrderService) save(ctx context.Context, order *sales.Order) error {
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return err
	}

	events := order.PullEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish order events",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
