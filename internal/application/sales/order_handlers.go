package sales

import (
	"context"
	"fmt"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderPlacedHandler logs new orders and counts them in the store metrics
type OrderPlacedHandler struct {
	metrics Metrics
	logger  *zap.Logger
}

// NewOrderPlacedHandler creates a new handler for order placed events
func NewOrderPlacedHandler(metrics Metrics, logger *zap.Logger) *OrderPlacedHandler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPlacedHandler{metrics: metrics, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*sales.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventTypeOrderPlaced, event.EventType())
	}

	h.logger.Info("Order received",
		zap.String("order_id", placed.OrderID.String()),
		zap.String("paypal_order_id", placed.PaypalOrderID),
		zap.String("customer_email", placed.CustomerEmail),
		zap.String("total", placed.Total.StringFixed(2)),
		zap.String("currency", placed.Currency),
		zap.Int("item_count", placed.ItemCount),
	)
	h.metrics.RecordOrderPlaced(ctx, placed.Total, placed.Currency)
	return nil
}

// OrderStatusChangedHandler counts fulfilment transitions
type OrderStatusChangedHandler struct {
	metrics Metrics
	logger  *zap.Logger
}

// NewOrderStatusChangedHandler creates a new handler for order status events
func NewOrderStatusChangedHandler(metrics Metrics, logger *zap.Logger) *OrderStatusChangedHandler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStatusChangedHandler{metrics: metrics, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderStatusChangedHandler) EventTypes() []string {
	return []string{sales.EventTypeOrderStatusChanged}
}

// Handle processes an OrderStatusChangedEvent
func (h *OrderStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*sales.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventTypeOrderStatusChanged, event.EventType())
	}

	h.logger.Info("Order status changed",
		zap.String("order_id", changed.OrderID.String()),
		zap.String("old_status", string(changed.OldStatus)),
		zap.String("new_status", string(changed.NewStatus)),
	)
	h.metrics.RecordOrderStatusChange(ctx, string(changed.NewStatus))
	return nil
}

var (
	_ shared.EventHandler = (*OrderPlacedHandler)(nil)
	_ shared.EventHandler = (*OrderStatusChangedHandler)(nil)
)
