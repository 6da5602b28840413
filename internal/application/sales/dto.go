package sales

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds a product size to the cart. Title, image and
// price are taken from the catalog.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Size      string    `json:"size" binding:"max=50"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// UpdateCartItemRequest sets the quantity of a cart line. Zero removes it.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=99"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID    string           `json:"id"`
	Items []sales.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
	Count int              `json:"count"`
}

// ToCartResponse converts a domain cart
func ToCartResponse(c *sales.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []sales.CartItem{}
	}
	return CartResponse{
		ID:    c.ID,
		Items: items,
		Total: c.Total(),
		Count: c.Count(),
	}
}

// CheckoutItem is a cart line as sent by the browser at checkout
type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// CreatePayPalOrderRequest is the body of POST /paypal/create-order
type CreatePayPalOrderRequest struct {
	CartItems []CheckoutItem  `json:"cartItems"`
	Total     decimal.Decimal `json:"total"`
}

func (r CreatePayPalOrderRequest) paymentRequest() *sales.CreatePaymentRequest {
	items := make([]sales.PaymentItem, len(r.CartItems))
	for i, item := range r.CartItems {
		items[i] = sales.PaymentItem{
			Name:       item.Title,
			Quantity:   item.Quantity,
			UnitAmount: item.Price,
		}
	}
	return &sales.CreatePaymentRequest{
		Currency: sales.DefaultCurrency,
		Total:    r.Total,
		Items:    items,
	}
}

// CreatePayPalOrderResponse carries the PayPal order id for the buyer to approve
type CreatePayPalOrderResponse struct {
	ID string `json:"id"`
}

// AddressInput is a postal address in requests
type AddressInput struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

// CustomerInput identifies the buyer in requests
type CustomerInput struct {
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Address *AddressInput `json:"address"`
}

func (c *CustomerInput) customer() sales.Customer {
	if c == nil {
		return sales.Customer{}
	}
	out := sales.Customer{Name: c.Name, Email: c.Email}
	if a := c.Address; a != nil {
		out.Address = &sales.Address{
			Line1:       a.Line1,
			Line2:       a.Line2,
			City:        a.City,
			State:       a.State,
			PostalCode:  a.PostalCode,
			CountryCode: a.CountryCode,
		}
	}
	return out
}

// CapturePayPalOrderRequest is the body of POST /paypal/capture-order
type CapturePayPalOrderRequest struct {
	OrderID   string         `json:"orderId" binding:"required"`
	Customer  *CustomerInput `json:"customer"`
	CartItems []CheckoutItem `json:"cartItems"`
}

// OrderLineInput is one purchased product size in a record order request
type OrderLineInput struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName" binding:"required"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"min=1"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// RecordOrderRequest is the body of POST /orders
type RecordOrderRequest struct {
	PaypalOrderID string           `json:"paypalOrderId" binding:"required"`
	Customer      CustomerInput    `json:"customer"`
	Products      []OrderLineInput `json:"products" binding:"dive"`
	Total         decimal.Decimal  `json:"total"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	OrderDate     *time.Time       `json:"orderDate"`
}

func (r RecordOrderRequest) details() sales.OrderDetails {
	lines := make([]sales.OrderLine, len(r.Products))
	for i, p := range r.Products {
		lines[i] = sales.OrderLine{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Size:        p.Size,
			Price:       p.Price,
			Quantity:    p.Quantity,
			Subtotal:    p.Subtotal,
		}
	}
	d := sales.OrderDetails{
		PaypalOrderID: r.PaypalOrderID,
		Customer:      r.Customer.customer(),
		Total:         r.Total,
		Currency:      r.Currency,
		Products:      lines,
	}
	if r.OrderDate != nil {
		d.OrderDate = *r.OrderDate
	}
	return d
}

// OrderListQuery filters the admin order list
type OrderListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=paid shipped completed cancelled"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

func (q OrderListQuery) filter() shared.Filter {
	f := shared.DefaultFilter()
	f.OrderBy = "order_date"
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	f.Status = q.Status
	return f
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID         `json:"id"`
	PaypalOrderID string            `json:"paypalOrderId"`
	Customer      sales.Customer    `json:"customer"`
	Total         decimal.Decimal   `json:"total"`
	Currency      string            `json:"currency"`
	Products      []sales.OrderLine `json:"products"`
	Status        string            `json:"status"`
	OrderDate     time.Time         `json:"orderDate"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *sales.Order) OrderResponse {
	lines := o.Products
	if lines == nil {
		lines = []sales.OrderLine{}
	}
	return OrderResponse{
		ID:            o.ID,
		PaypalOrderID: o.PaypalOrderID,
		Customer:      o.Customer,
		Total:         o.Total,
		Currency:      o.Currency,
		Products:      lines,
		Status:        string(o.Status),
		OrderDate:     o.OrderDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
