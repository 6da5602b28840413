package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCapture(t *testing.T, body []byte) CaptureOrderResponse {
	t.Helper()
	var resp CaptureOrderResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestPayPalHandler_CreateOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/api/paypal/create-order", map[string]any{
		"cartItems": []map[string]any{{"title": "Golden Hour", "size": "A3", "price": "45", "quantity": 1}},
		"total":     "45",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]any{"id": "PAYPAL-45.00"}, decodeMap(t, w))
}

func TestPayPalHandler_CreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"malformed body", "{", "Invalid request body"},
		{"empty cart", map[string]any{"cartItems": []any{}, "total": "10"}, "Cart items are required"},
		{"zero total", map[string]any{
			"cartItems": []map[string]any{{"title": "Print", "price": "10", "quantity": 1}},
			"total":     "0",
		}, "Valid total amount is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(http.MethodPost, "/api/paypal/create-order", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeMap(t, w)["error"])
		})
	}
}

func TestPayPalHandler_CreateOrderPassesGatewayErrorThrough(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.createErr = &sales.GatewayError{
		StatusCode: http.StatusUnprocessableEntity,
		Name:       "UNPROCESSABLE_ENTITY",
		Message:    "The requested action could not be performed",
		Details:    json.RawMessage(`{"name":"UNPROCESSABLE_ENTITY"}`),
	}

	w := env.request(http.MethodPost, "/api/paypal/create-order", map[string]any{
		"cartItems": []map[string]any{{"title": "Print", "price": "10", "quantity": 1}},
		"total":     "10",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeMap(t, w)
	assert.Equal(t, "PayPal order creation failed", body["error"])
	assert.Equal(t, map[string]any{"name": "UNPROCESSABLE_ENTITY"}, body["details"])
}

func TestPayPalHandler_CreateOrderGatewayUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.createErr = sales.ErrGatewayUnavailable

	w := env.request(http.MethodPost, "/api/paypal/create-order", map[string]any{
		"cartItems": []map[string]any{{"title": "Print", "price": "10", "quantity": 1}},
		"total":     "10",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPayPalHandler_CaptureOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/api/paypal/capture-order", map[string]any{
		"orderId":   "5O190127TN364715T",
		"cartItems": []map[string]any{{"productId": "p1", "title": "Golden Hour", "size": "A3", "price": "45", "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeCapture(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Equal(t, "5O190127TN364715T", resp.Order.PaypalOrderID)
	assert.Equal(t, "Ada Lovelace", resp.Order.Customer.Name)
	assert.Equal(t, "45", resp.Order.Total.String())
	assert.Equal(t, "GBP", resp.Order.Currency)
	require.Len(t, resp.Order.Products, 1)
	assert.Equal(t, "45", resp.Order.Products[0].Subtotal.String())

	t.Run("capturing again returns the recorded order", func(t *testing.T) {
		w := env.request(http.MethodPost, "/api/paypal/capture-order", map[string]any{"orderId": "5O190127TN364715T"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, resp.Order.ID, decodeCapture(t, w.Body.Bytes()).Order.ID)
		assert.Equal(t, 1, env.gateway.captures)
	})
}

func TestPayPalHandler_CaptureUsesAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct("Night Market", variant("A3", "45"))

	cookie := findCookie(t, env.request(http.MethodGet, "/api/cart", nil), CartCookie)
	w := env.request(http.MethodPost, "/api/cart/items", map[string]any{"productId": product.ID, "size": "A3"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(http.MethodPost, "/api/paypal/capture-order", map[string]any{
		"orderId":  "CART-ORDER",
		"customer": map[string]any{"name": "Grace Hopper", "email": "grace@example.com"},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	order := decodeCapture(t, w.Body.Bytes()).Order
	assert.Equal(t, "Grace Hopper", order.Customer.Name)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "Night Market", order.Products[0].ProductName)
	assert.Equal(t, product.ID.String(), order.Products[0].ProductID)

	w = env.request(http.MethodGet, "/api/cart", nil, cookie)
	assert.Empty(t, decodeData[cartItems](t, w.Body.Bytes()).Items)
}

type cartItems struct {
	Items []sales.CartItem `json:"items"`
}

func TestPayPalHandler_CaptureNotCompleted(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.captureStatus = "PENDING"
	body := map[string]any{
		"orderId":   "PENDING-ORDER",
		"cartItems": []map[string]any{{"title": "Print", "price": "45", "quantity": 1}},
	}

	w := env.request(http.MethodPost, "/api/paypal/capture-order", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Payment has not been completed", decodeMap(t, w)["error"])

	env.gateway.captureStatus = ""
	w = env.request(http.MethodPost, "/api/paypal/capture-order", body)
	assert.Equal(t, http.StatusOK, w.Code, "a failed capture must not block a retry")
	assert.Equal(t, 2, env.gateway.captures)
}

func TestPayPalHandler_CaptureRequiresOrderID(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(http.MethodPost, "/api/paypal/capture-order", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Order ID is required", decodeMap(t, w)["error"])
}
