package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderDetails() OrderDetails {
	return OrderDetails{
		PaypalOrderID: "5O190127TN364715T",
		Customer:      Customer{Name: "Ada Lovelace", Email: "Ada@Example.com"},
		Products: []OrderLine{
			{ProductID: "p1", ProductName: "Mountain Sunrise", Size: "A3", Price: decimal.NewFromInt(45), Quantity: 2},
		},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("records a paid order with defaults", func(t *testing.T) {
		order, err := NewOrder(validOrderDetails())
		require.NoError(t, err)

		assert.Equal(t, OrderStatusPaid, order.Status)
		assert.Equal(t, DefaultCurrency, order.Currency)
		assert.Equal(t, "ada@example.com", order.Customer.Email)
		assert.True(t, order.Products[0].Subtotal.Equal(decimal.NewFromInt(90)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(90)))
		assert.False(t, order.OrderDate.IsZero())
		assert.Equal(t, 2, order.ItemCount())
	})

	t.Run("keeps explicit total", func(t *testing.T) {
		d := validOrderDetails()
		d.Total = decimal.NewFromInt(95)
		order, err := NewOrder(d)
		require.NoError(t, err)
		assert.True(t, order.Total.Equal(decimal.NewFromInt(95)))
	})

	t.Run("publishes OrderPlaced event", func(t *testing.T) {
		order, err := NewOrder(validOrderDetails())
		require.NoError(t, err)

		events := order.Events()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, order.PaypalOrderID, event.PaypalOrderID)
		assert.Equal(t, 2, event.ItemCount)
	})

	t.Run("requires paypal order id", func(t *testing.T) {
		d := validOrderDetails()
		d.PaypalOrderID = ""
		_, err := NewOrder(d)
		require.Error(t, err)
	})

	t.Run("requires customer email", func(t *testing.T) {
		d := validOrderDetails()
		d.Customer.Email = "nope"
		_, err := NewOrder(d)
		require.Error(t, err)
	})

	t.Run("rejects zero quantity lines", func(t *testing.T) {
		d := validOrderDetails()
		d.Products[0].Quantity = 0
		_, err := NewOrder(d)
		require.Error(t, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	order, err := NewOrder(validOrderDetails())
	require.NoError(t, err)
	order.PullEvents()

	require.NoError(t, order.ChangeStatus(OrderStatusShipped))
	assert.Equal(t, OrderStatusShipped, order.Status)
	require.Len(t, order.Events(), 1)

	event := order.Events()[0].(*OrderStatusChangedEvent)
	assert.Equal(t, OrderStatusPaid, event.OldStatus)
	assert.Equal(t, OrderStatusShipped, event.NewStatus)

	require.NoError(t, order.ChangeStatus(OrderStatusShipped))
	assert.Len(t, order.Events(), 1)

	err = order.ChangeStatus("lost")
	require.Error(t, err)
	assert.Equal(t, "Invalid status", err.Error())
}

func TestCreatePaymentRequest_Validate(t *testing.T) {
	valid := CreatePaymentRequest{
		Total: decimal.NewFromInt(45),
		Items: []PaymentItem{{Name: "Print", Quantity: 1, UnitAmount: decimal.NewFromInt(45)}},
	}
	require.NoError(t, valid.Validate())

	empty := valid
	empty.Items = nil
	err := empty.Validate()
	require.Error(t, err)
	assert.Equal(t, "Cart items are required", err.Error())

	zero := valid
	zero.Total = decimal.Zero
	err = zero.Validate()
	require.Error(t, err)
	assert.Equal(t, "Valid total amount is required", err.Error())
}
