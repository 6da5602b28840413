package telemetry

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when StoreMetrics is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Metric attribute keys
const (
	AttrCurrency = attribute.Key("currency")
	AttrReason   = attribute.Key("reason")
	AttrStatus   = attribute.Key("status")
)

// StoreMetrics records storefront sales activity.
// Revenue is counted in minor units (pence) to keep the counter integral.
type StoreMetrics struct {
	ordersPlaced       metric.Int64Counter
	revenue            metric.Int64Counter
	cartAdditions      metric.Int64Counter
	checkoutFailures   metric.Int64Counter
	orderStatusChanges metric.Int64Counter
}

// NewStoreMetrics registers the storefront instruments on meter
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &StoreMetrics{}
	var err error
	if m.ordersPlaced, err = meter.Int64Counter("storefront_orders_placed_total",
		metric.WithDescription("Orders recorded"), metric.WithUnit("{orders}")); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Int64Counter("storefront_revenue_minor_total",
		metric.WithDescription("Order revenue in minor currency units"), metric.WithUnit("{pence}")); err != nil {
		return nil, err
	}
	if m.cartAdditions, err = meter.Int64Counter("storefront_cart_additions_total",
		metric.WithDescription("Units added to carts"), metric.WithUnit("{items}")); err != nil {
		return nil, err
	}
	if m.checkoutFailures, err = meter.Int64Counter("storefront_checkout_failures_total",
		metric.WithDescription("Failed PayPal order creations and captures"), metric.WithUnit("{failures}")); err != nil {
		return nil, err
	}
	if m.orderStatusChanges, err = meter.Int64Counter("storefront_order_status_changes_total",
		metric.WithDescription("Order status transitions"), metric.WithUnit("{changes}")); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordOrderPlaced counts an order and adds its total to revenue
func (m *StoreMetrics) RecordOrderPlaced(ctx context.Context, total decimal.Decimal, currency string) {
	attrs := metric.WithAttributes(AttrCurrency.String(strings.ToUpper(currency)))
	m.ordersPlaced.Add(ctx, 1, attrs)
	m.revenue.Add(ctx, total.Shift(2).Round(0).IntPart(), attrs)
}

// RecordCartAddition counts quantity units added to a cart
func (m *StoreMetrics) RecordCartAddition(ctx context.Context, quantity int) {
	if quantity <= 0 {
		return
	}
	m.cartAdditions.Add(ctx, int64(quantity))
}

// RecordCheckoutFailure counts a failed checkout step
func (m *StoreMetrics) RecordCheckoutFailure(ctx context.Context, reason string) {
	m.checkoutFailures.Add(ctx, 1, metric.WithAttributes(AttrReason.String(reason)))
}

// RecordOrderStatusChange counts a status transition into status
func (m *StoreMetrics) RecordOrderStatusChange(ctx context.Context, status string) {
	m.orderStatusChanges.Add(ctx, 1, metric.WithAttributes(AttrStatus.String(status)))
}
