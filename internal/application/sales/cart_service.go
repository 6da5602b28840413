package sales

import (
	"context"
	"strings"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// Cart errors
var (
	ErrCartItemNotFound = shared.NewDomainError("NOT_FOUND", "Cart item not found")
	ErrSizeUnavailable  = shared.NewDomainError("INVALID_SIZE", "Size is not available for this product")
	ErrProductNotPriced = shared.NewDomainError("INVALID_PRODUCT", "Product has no price")
)

// ProductFinder looks up products for pricing cart lines
type ProductFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// CartService manages shopper carts
type CartService struct {
	store    sales.CartStore
	products ProductFinder
	metrics  Metrics
}

// NewCartService creates a new CartService
func NewCartService(store sales.CartStore, products ProductFinder) *CartService {
	return &CartService{store: store, products: products, metrics: nopMetrics{}}
}

// SetMetrics sets the business metrics recorder
func (s *CartService) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Get returns the cart stored under cartID, empty when none exists
func (s *CartService) Get(ctx context.Context, cartID string) (*CartResponse, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// Add prices the requested size from the catalog and adds it to the cart
func (s *CartService) Add(ctx context.Context, cartID string, req AddCartItemRequest) (*CartResponse, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	item, err := lineFor(product, strings.TrimSpace(req.Size))
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity

	resp, err := s.mutate(ctx, cartID, func(cart *sales.Cart) error {
		return cart.Add(item)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCartAddition(ctx, quantity)
	return resp, nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, variantID string, quantity int) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(cart *sales.Cart) error {
		if !cart.UpdateQuantity(variantID, quantity) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// Remove drops a line from the cart
func (s *CartService) Remove(ctx context.Context, cartID, variantID string) (*CartResponse, error) {
	return s.mutate(ctx, cartID, func(cart *sales.Cart) error {
		if !cart.Remove(variantID) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}

func (s *CartService) mutate(ctx context.Context, cartID string, fn func(*sales.Cart) error) (*CartResponse, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	resp := ToCartResponse(cart)
	return &resp, nil
}

// lineFor builds the cart line for a product size. Products with variants
// must be bought in one of their sizes; legacy products use their single
// price and sizes list.
func lineFor(p *catalog.Product, size string) (sales.CartItem, error) {
	item := sales.CartItem{ProductID: p.ID, Title: p.Title, Size: size}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}

	if len(p.Variants) > 0 {
		v, ok := p.FindVariant(size)
		if !ok {
			return item, ErrSizeUnavailable
		}
		item.Price = v.Price
		return item, nil
	}

	if p.Price == nil {
		return item, ErrProductNotPriced
	}
	if len(p.Sizes) > 0 {
		canonical, ok := matchSize(p.Sizes, size)
		if !ok {
			return item, ErrSizeUnavailable
		}
		item.Size = canonical
	}
	item.Price = *p.Price
	return item, nil
}

// matchSize finds size in the product's sizes ignoring case and returns the
// catalog spelling, so "m" and "M" land on the same cart line
func matchSize(sizes []string, size string) (string, bool) {
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, size) {
			return s, true
		}
	}
	return "", false
}
