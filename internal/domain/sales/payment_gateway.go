package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Gateway errors
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentNotComplete = shared.NewDomainError("PAYMENT_NOT_COMPLETE", "Payment has not been completed")
)

// CaptureStatusCompleted is the status of a fully captured order
const CaptureStatusCompleted = "COMPLETED"

// GatewayError is a failure reported by the payment provider itself
type GatewayError struct {
	StatusCode int
	Name       string
	Message    string
	// Details is the provider's error body, passed through to clients
	Details json.RawMessage
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("payment gateway error %d %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("payment gateway error %d: %s", e.StatusCode, e.Message)
}

// PaymentItem is one line sent to the payment provider
type PaymentItem struct {
	Name       string
	Quantity   int
	UnitAmount decimal.Decimal
}

// CreatePaymentRequest asks the provider to open an order for capture
type CreatePaymentRequest struct {
	Currency string
	Total    decimal.Decimal
	Items    []PaymentItem
}

// Validate validates the request
func (r *CreatePaymentRequest) Validate() error {
	if len(r.Items) == 0 {
		return shared.NewDomainError("INVALID_CART", "Cart items are required")
	}
	if !r.Total.IsPositive() {
		return shared.NewDomainError("INVALID_TOTAL", "Valid total amount is required")
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item.Name) == "" || item.Quantity < 1 || item.UnitAmount.IsNegative() {
			return shared.NewDomainError("INVALID_CART", "Cart items must have a title, quantity and price")
		}
	}
	return nil
}

// CreatePaymentResponse identifies the provider order
type CreatePaymentResponse struct {
	OrderID string
	Status  string
}

// CaptureResult describes a captured provider order
type CaptureResult struct {
	OrderID   string
	CaptureID string
	Status    string
	Amount    decimal.Decimal
	Currency  string
	Payer     Customer
}

// IsCompleted returns true if the funds were captured
func (r *CaptureResult) IsCompleted() bool {
	return r.Status == CaptureStatusCompleted
}

// PaymentGateway opens and captures orders with an external payment provider
type PaymentGateway interface {
	// CreateOrder opens a provider order for the buyer to approve
	CreateOrder(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)

	// CaptureOrder captures the funds of an approved provider order
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}
