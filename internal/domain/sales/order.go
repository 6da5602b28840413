package sales

import (
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the store currency
const DefaultCurrency = "GBP"

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Address is a postal address as returned by PayPal
type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

// Customer identifies who placed an order
type Customer struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address *Address `json:"address,omitempty"`
}

// OrderLine is one purchased product size
type OrderLine struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is a paid checkout recorded against its PayPal order
type Order struct {
	shared.BaseAggregateRoot
	PaypalOrderID string
	Customer      Customer
	Total         decimal.Decimal
	Currency      string
	Products      []OrderLine
	Status        OrderStatus
	OrderDate     time.Time
}

// OrderDetails carries the data needed to record an order
type OrderDetails struct {
	PaypalOrderID string
	Customer      Customer
	Total         decimal.Decimal
	Currency      string
	Products      []OrderLine
	OrderDate     time.Time
}

// NewOrder records a paid order. Missing line subtotals are computed from
// price and quantity, and a zero total is computed from the lines.
func NewOrder(details OrderDetails) (*Order, error) {
	if strings.TrimSpace(details.PaypalOrderID) == "" {
		return nil, shared.NewDomainError("INVALID_PAYPAL_ORDER", "PayPal order ID is required")
	}
	if strings.TrimSpace(details.Customer.Name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if !strings.Contains(details.Customer.Email, "@") {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer email is required")
	}

	lines := make([]OrderLine, 0, len(details.Products))
	linesTotal := decimal.Zero
	for _, line := range details.Products {
		if strings.TrimSpace(line.ProductName) == "" {
			return nil, shared.NewDomainError("INVALID_LINE", "Product name is required")
		}
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_LINE", "Quantity must be at least 1")
		}
		if line.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_LINE", "Price cannot be negative")
		}
		if line.Subtotal.IsZero() {
			line.Subtotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}
		linesTotal = linesTotal.Add(line.Subtotal)
		lines = append(lines, line)
	}

	total := details.Total
	if total.IsZero() {
		total = linesTotal
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Total cannot be negative")
	}

	currency := strings.ToUpper(strings.TrimSpace(details.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	orderDate := details.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	customer := details.Customer
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.ToLower(strings.TrimSpace(customer.Email))

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaypalOrderID:     strings.TrimSpace(details.PaypalOrderID),
		Customer:          customer,
		Total:             total,
		Currency:          currency,
		Products:          lines,
		Status:            OrderStatusPaid,
		OrderDate:         orderDate,
	}

	order.Raise(NewOrderPlacedEvent(order))

	return order, nil
}

// ChangeStatus moves the order to a new fulfilment status
func (o *Order) ChangeStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid status")
	}
	if o.Status == status {
		return nil
	}

	previous := o.Status
	o.Status = status
	o.Touch()

	o.Raise(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	n := 0
	for _, line := range o.Products {
		n += line.Quantity
	}
	return n
}
