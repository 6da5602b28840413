package sales

import (
	"context"

	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByPaypalOrderID finds an order by its PayPal order ID
	FindByPaypalOrderID(ctx context.Context, paypalOrderID string) (*Order, error)

	// FindAll finds orders matching the filter. Supported filters: status.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartStore persists carts between requests. Load returns an empty cart
// when none is stored under id.
type CartStore interface {
	Load(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
}
