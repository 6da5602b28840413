package handler

import (
	"errors"
	"net/http"

	salesapp "github.com/archerandash/storefront/internal/application/sales"
	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/archerandash/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PayPalHandler opens and captures PayPal orders. Its responses follow the
// storefront's PayPal button contract rather than the API envelope.
type PayPalHandler struct {
	BaseHandler
	checkoutService *salesapp.CheckoutService
}

// NewPayPalHandler creates a new PayPalHandler
func NewPayPalHandler(checkoutService *salesapp.CheckoutService) *PayPalHandler {
	return &PayPalHandler{checkoutService: checkoutService}
}

// CaptureOrderResponse is the body of a successful capture
// @Description Recorded order for the captured payment
type CaptureOrderResponse struct {
	Success bool                   `json:"success" example:"true"`
	Order   salesapp.OrderResponse `json:"order"`
}

// CreateOrder godoc
// @Summary      Open a PayPal order
// @Tags         paypal
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreatePayPalOrderRequest true "Cart lines and total"
// @Success      200 {object} salesapp.CreatePayPalOrderResponse
// @Failure      400 {object} GatewayErrorResponse
// @Failure      500 {object} GatewayErrorResponse
// @Router       /paypal/create-order [post]
func (h *PayPalHandler) CreateOrder(c *gin.Context) {
	var req salesapp.CreatePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GatewayErrorResponse{Error: "Invalid request body"})
		return
	}
	order, err := h.checkoutService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.gatewayError(c, err, "PayPal order creation failed")
		return
	}
	c.JSON(http.StatusOK, order)
}

// CaptureOrder godoc
// @Summary      Capture an approved PayPal order
// @Description  Records the order and clears the cart. Repeating a capture returns the recorded order.
// @Tags         paypal
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CapturePayPalOrderRequest true "PayPal order id and buyer"
// @Success      200 {object} CaptureOrderResponse
// @Failure      400 {object} GatewayErrorResponse
// @Failure      409 {object} GatewayErrorResponse
// @Failure      422 {object} GatewayErrorResponse
// @Router       /paypal/capture-order [post]
func (h *PayPalHandler) CaptureOrder(c *gin.Context) {
	var req salesapp.CapturePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GatewayErrorResponse{Error: "Order ID is required"})
		return
	}
	order, err := h.checkoutService.CaptureOrder(c.Request.Context(), cookieCartID(c), req)
	if err != nil {
		h.gatewayError(c, err, "PayPal capture failed")
		return
	}
	c.JSON(http.StatusOK, CaptureOrderResponse{Success: true, Order: *order})
}

// gatewayError writes {error, details}. Provider failures keep the provider's
// status and body. Domain errors use their own status and message.
func (h *PayPalHandler) gatewayError(c *gin.Context, err error, message string) {
	var gwErr *sales.GatewayError
	if errors.As(err, &gwErr) {
		status := gwErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		resp := GatewayErrorResponse{Error: message}
		if len(gwErr.Details) > 0 {
			resp.Details = gwErr.Details
		}
		c.JSON(status, resp)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), GatewayErrorResponse{Error: domainErr.Message})
		return
	}

	logger.GetGinLogger(c).Error(message, zap.Error(err))
	status := http.StatusInternalServerError
	if errors.Is(err, sales.ErrGatewayUnavailable) {
		status = http.StatusBadGateway
	}
	c.JSON(status, GatewayErrorResponse{Error: message})
}
