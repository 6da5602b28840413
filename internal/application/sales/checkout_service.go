package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// captureKeyTTL is how long a captured PayPal order id stays reserved
const captureKeyTTL = 24 * time.Hour

// ErrCaptureInProgress is returned when another request is capturing the same PayPal order
var ErrCaptureInProgress = shared.NewDomainError("CAPTURE_IN_PROGRESS", "Order capture already in progress")

// CheckoutService opens and captures PayPal orders
type CheckoutService struct {
	gateway     sales.PaymentGateway
	orders      *OrderService
	carts       sales.CartStore
	idempotency shared.IdempotencyStore
	metrics     Metrics
	logger      *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	gateway sales.PaymentGateway,
	orders *OrderService,
	carts sales.CartStore,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		gateway:     gateway,
		orders:      orders,
		carts:       carts,
		idempotency: idempotency,
		metrics:     nopMetrics{},
		logger:      logger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *CheckoutService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// CreateOrder opens a PayPal order for the cart lines
func (s *CheckoutService) CreateOrder(ctx context.Context, req CreatePayPalOrderRequest) (*CreatePayPalOrderResponse, error) {
	payment := req.paymentRequest()
	if err := payment.Validate(); err != nil {
		s.metrics.RecordCheckoutFailure(ctx, FailureInvalidRequest)
		return nil, err
	}

	resp, err := s.gateway.CreateOrder(ctx, payment)
	if err != nil {
		s.metrics.RecordCheckoutFailure(ctx, FailureGateway)
		return nil, err
	}
	return &CreatePayPalOrderResponse{ID: resp.OrderID}, nil
}

// CaptureOrder captures an approved PayPal order and records it. Capturing
// an order that is already recorded returns the existing record. The cart
// under cartID is cleared once the order is recorded.
func (s *CheckoutService) CaptureOrder(ctx context.Context, cartID string, req CapturePayPalOrderRequest) (*OrderResponse, error) {
	paypalOrderID := strings.TrimSpace(req.OrderID)

	existing, err := s.orders.findByPaypalOrderID(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		resp := ToOrderResponse(existing)
		return &resp, nil
	}

	key := "capture:" + paypalOrderID
	claimed, err := s.idempotency.MarkProcessed(ctx, key, captureKeyTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve capture: %w", err)
	}
	if !claimed {
		return nil, ErrCaptureInProgress
	}

	order, err := s.capture(ctx, cartID, paypalOrderID, req)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
			s.logger.Warn("Failed to release capture key",
				zap.String("paypal_order_id", paypalOrderID),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	if cartID != "" {
		if err := s.carts.Delete(ctx, cartID); err != nil {
			s.logger.Warn("Failed to clear cart after checkout",
				zap.String("cart_id", cartID),
				zap.Error(err),
			)
		}
	}

	resp := ToOrderResponse(order)
	return &resp, nil
}

func (s *CheckoutService) capture(ctx context.Context, cartID, paypalOrderID string, req CapturePayPalOrderRequest) (*sales.Order, error) {
	result, err := s.gateway.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		s.metrics.RecordCheckoutFailure(ctx, FailureGateway)
		return nil, err
	}
	if !result.IsCompleted() {
		s.metrics.RecordCheckoutFailure(ctx, FailureNotCompleted)
		s.logger.Warn("PayPal order not completed",
			zap.String("paypal_order_id", paypalOrderID),
			zap.String("status", result.Status),
		)
		return nil, sales.ErrPaymentNotComplete
	}

	lines, err := s.orderLines(ctx, cartID, req.CartItems)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrder(sales.OrderDetails{
		PaypalOrderID: paypalOrderID,
		Customer:      buyer(req.Customer.customer(), result.Payer),
		Total:         result.Amount,
		Currency:      result.Currency,
		Products:      lines,
	})
	if err != nil {
		s.metrics.RecordCheckoutFailure(ctx, FailureRecordOrder)
		return nil, err
	}

	if err := s.orders.save(ctx, order); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			if existing, findErr := s.orders.findByPaypalOrderID(ctx, paypalOrderID); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		s.metrics.RecordCheckoutFailure(ctx, FailureRecordOrder)
		s.logger.Error("Captured PayPal order could not be recorded",
			zap.String("paypal_order_id", paypalOrderID),
			zap.String("capture_id", result.CaptureID),
			zap.Error(err),
		)
		return nil, err
	}
	return order, nil
}

// orderLines uses the lines sent with the capture request, falling back to
// the stored cart.
func (s *CheckoutService) orderLines(ctx context.Context, cartID string, items []CheckoutItem) ([]sales.OrderLine, error) {
	if len(items) > 0 {
		lines := make([]sales.OrderLine, len(items))
		for i, item := range items {
			lines[i] = sales.OrderLine{
				ProductID:   item.ProductID,
				ProductName: item.Title,
				Size:        item.Size,
				Price:       item.Price,
				Quantity:    item.Quantity,
			}
		}
		return lines, nil
	}
	if cartID == "" {
		return []sales.OrderLine{}, nil
	}

	cart, err := s.carts.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	lines := make([]sales.OrderLine, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = sales.OrderLine{
			ProductID:   item.ProductID.String(),
			ProductName: item.Title,
			Size:        item.Size,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
	}
	return lines, nil
}

// buyer fills customer fields missing from the request with the PayPal payer
func buyer(given, payer sales.Customer) sales.Customer {
	if strings.TrimSpace(given.Name) == "" {
		given.Name = payer.Name
	}
	if strings.TrimSpace(given.Email) == "" {
		given.Email = payer.Email
	}
	if given.Address == nil {
		given.Address = payer.Address
	}
	return given
}
