package persistence

import (
	"context"
	"testing"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, paypalID, email string) *sales.Order {
	t.Helper()
	order, err := sales.NewOrder(sales.OrderDetails{
		PaypalOrderID: paypalID,
		Customer: sales.Customer{
			Name:  "Jane Doe",
			Email: email,
			Address: &sales.Address{
				Line1:       "1 High Street",
				City:        "London",
				PostalCode:  "N1 1AA",
				CountryCode: "GB",
			},
		},
		Products: []sales.OrderLine{
			{ProductID: "p-1", ProductName: "Mountain Sunrise", Size: "A3", Price: decimal.NewFromInt(45), Quantity: 2},
		},
	})
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, "5O190127TN364715T", "jane@example.com")
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByPaypalOrderID(ctx, "5O190127TN364715T")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, sales.OrderStatusPaid, found.Status)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(90)))
	require.NotNil(t, found.Customer.Address)
	assert.Equal(t, "London", found.Customer.Address.City)
	require.Len(t, found.Products, 1)
	assert.Equal(t, 2, found.Products[0].Quantity)

	require.NoError(t, found.ChangeStatus(sales.OrderStatusShipped))
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, sales.OrderStatusShipped, reloaded.Status)
}

func TestGormOrderRepository_DuplicatePaypalOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestOrder(t, "DUPLICATE-1", "a@example.com")))
	err := repo.Save(ctx, newTestOrder(t, "DUPLICATE-1", "b@example.com"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormOrderRepository_FindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	paid := newTestOrder(t, "PAID-1", "paid@example.com")
	shipped := newTestOrder(t, "SHIPPED-1", "shipped@example.com")
	require.NoError(t, shipped.ChangeStatus(sales.OrderStatusShipped))
	require.NoError(t, repo.Save(ctx, paid))
	require.NoError(t, repo.Save(ctx, shipped))

	filter := shared.Filter{Status: "shipped"}
	orders, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SHIPPED-1", orders[0].PaypalOrderID)

	orders, err = repo.FindAll(ctx, shared.Filter{Search: "paid@"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, paid.ID, orders[0].ID)

	orders, err = repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 1, OrderBy: "status", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "SHIPPED-1", orders[0].PaypalOrderID)
}
