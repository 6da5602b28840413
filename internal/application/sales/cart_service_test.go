package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanvas(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Title:       "Mountain Sunrise",
		Description: "Alpine light on canvas",
		Variants: []catalog.Variant{
			{Size: "A3", Price: decimal.RequireFromString("45.00")},
			{Size: "A2", Price: decimal.RequireFromString("65.00")},
		},
		Images: []string{"https://cdn.test/products/sunrise.jpg"},
	})
	require.NoError(t, err)
	return p
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	product := newCanvas(t)

	t.Run("prices the line from the catalog and merges repeats", func(t *testing.T) {
		metrics := &recordingMetrics{}
		svc := NewCartService(newMemoryCartStore(), productsByID{product.ID: product})
		svc.SetMetrics(metrics)

		_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A3"})
		require.NoError(t, err)
		cart, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A3", Quantity: 2})
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		item := cart.Items[0]
		assert.Equal(t, sales.VariantKey(product.ID, "A3"), item.VariantID)
		assert.Equal(t, "Mountain Sunrise", item.Title)
		assert.Equal(t, "https://cdn.test/products/sunrise.jpg", item.Image)
		assert.Equal(t, 3, item.Quantity)
		assert.True(t, cart.Total.Equal(decimal.RequireFromString("135")))
		assert.Equal(t, 3, cart.Count)
		assert.Equal(t, 3, metrics.cartAdditions)
	})

	t.Run("unknown size", func(t *testing.T) {
		svc := NewCartService(newMemoryCartStore(), productsByID{product.ID: product})
		_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A0"})
		assert.ErrorIs(t, err, ErrSizeUnavailable)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewCartService(newMemoryCartStore(), productsByID{})
		_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: uuid.New(), Size: "A3"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("legacy product uses its single price", func(t *testing.T) {
		price := decimal.RequireFromString("30")
		legacy := &catalog.Product{Title: "Old Print", Price: &price, Sizes: []string{"A4"}}
		legacy.ID = uuid.New()
		svc := NewCartService(newMemoryCartStore(), productsByID{legacy.ID: legacy})

		cart, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: legacy.ID, Size: "A4"})
		require.NoError(t, err)
		assert.True(t, cart.Total.Equal(price))

		_, err = svc.Add(ctx, "c1", AddCartItemRequest{ProductID: legacy.ID, Size: "A1"})
		assert.ErrorIs(t, err, ErrSizeUnavailable)
	})

	t.Run("legacy sizes match case-insensitively onto one line", func(t *testing.T) {
		price := decimal.RequireFromString("25")
		legacy := &catalog.Product{Title: "Linen Tee", Price: &price, Sizes: []string{"S", " M "}}
		legacy.ID = uuid.New()
		svc := NewCartService(newMemoryCartStore(), productsByID{legacy.ID: legacy})

		_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: legacy.ID, Size: "M"})
		require.NoError(t, err)
		cart, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: legacy.ID, Size: "m"})
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, "M", cart.Items[0].Size)
		assert.Equal(t, sales.VariantKey(legacy.ID, "M"), cart.Items[0].VariantID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("failed save is not counted as an addition", func(t *testing.T) {
		metrics := &recordingMetrics{}
		store := &unsavableCartStore{memoryCartStore: newMemoryCartStore()}
		svc := NewCartService(store, productsByID{product.ID: product})
		svc.SetMetrics(metrics)

		_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A3"})
		require.Error(t, err)
		assert.Zero(t, metrics.cartAdditions)
	})
}

// unsavableCartStore loads carts but fails every save
type unsavableCartStore struct {
	*memoryCartStore
}

func (s *unsavableCartStore) Save(context.Context, *sales.Cart) error {
	return errors.New("redis unavailable")
}

func TestCartService_UpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	product := newCanvas(t)
	store := newMemoryCartStore()
	svc := NewCartService(store, productsByID{product.ID: product})

	_, err := svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A3"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "c1", AddCartItemRequest{ProductID: product.ID, Size: "A2"})
	require.NoError(t, err)

	a3 := sales.VariantKey(product.ID, "A3")
	cart, err := svc.UpdateQuantity(ctx, "c1", a3, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Count)

	_, err = svc.UpdateQuantity(ctx, "c1", "missing", 1)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	cart, err = svc.Remove(ctx, "c1", a3)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	_, err = svc.Remove(ctx, "c1", a3)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, svc.Clear(ctx, "c1"))
	cart, err = svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}
