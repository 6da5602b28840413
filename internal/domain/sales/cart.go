package sales

import (
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product size in a cart
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID string          `json:"variantId"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price times quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// VariantKey builds the identifier of a product size within a cart
func VariantKey(productID uuid.UUID, size string) string {
	return productID.String() + "-" + size
}

// Cart holds the items a shopper intends to buy. Items are unique per
// product and size.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart
func NewCart(id string) *Cart {
	return &Cart{ID: id, Items: []CartItem{}, UpdatedAt: time.Now()}
}

// Add puts an item in the cart. An existing line for the same product and
// size has its quantity increased instead.
func (c *Cart) Add(item CartItem) error {
	if item.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Product is required")
	}
	item.Size = strings.TrimSpace(item.Size)
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if item.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Size == item.Size {
			c.Items[i].Quantity += item.Quantity
			c.touch()
			return nil
		}
	}

	item.VariantID = VariantKey(item.ProductID, item.Size)
	c.Items = append(c.Items, item)
	c.touch()
	return nil
}

// Remove drops the line with variantID. It reports whether a line was removed.
func (c *Cart) Remove(variantID string) bool {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(variantID string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(variantID)
	}
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items[i].Quantity = quantity
			c.touch()
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.touch()
}

// Total returns the sum of price times quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
