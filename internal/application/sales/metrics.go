package sales

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metrics records store business metrics
type Metrics interface {
	RecordOrderPlaced(ctx context.Context, total decimal.Decimal, currency string)
	RecordCartAddition(ctx context.Context, quantity int)
	RecordCheckoutFailure(ctx context.Context, reason string)
	RecordOrderStatusChange(ctx context.Context, status string)
}

// Checkout failure reasons
const (
	FailureInvalidRequest = "invalid_request"
	FailureGateway        = "gateway"
	FailureNotCompleted   = "not_completed"
	FailureRecordOrder    = "record_order"
)

type nopMetrics struct{}

func (nopMetrics) RecordOrderPlaced(context.Context, decimal.Decimal, string) {}
func (nopMetrics) RecordCartAddition(context.Context, int)                    {}
func (nopMetrics) RecordCheckoutFailure(context.Context, string)              {}
func (nopMetrics) RecordOrderStatusChange(context.Context, string)            {}
