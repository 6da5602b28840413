package handler

import (
	"net/http"

	salesapp "github.com/archerandash/storefront/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles recorded orders
type OrderHandler struct {
	BaseHandler
	orderService *salesapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RecordOrderResponse is the body of POST /orders
// @Description Recorded order
type RecordOrderResponse struct {
	Success bool                   `json:"success" example:"true"`
	Message string                 `json:"message" example:"Order received successfully"`
	Order   salesapp.OrderResponse `json:"order"`
}

// Record godoc
// @Summary      Record a paid order
// @Description  Called by the storefront once PayPal has approved the payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body salesapp.RecordOrderRequest true "Order"
// @Success      201 {object} RecordOrderResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Record(c *gin.Context) {
	var req salesapp.RecordOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := h.orderService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RecordOrderResponse{
		Success: true,
		Message: "Order received successfully",
		Order:   *order,
	})
}

// List godoc
// @Summary      List orders
// @Description  Paginated, newest first unless orderBy says otherwise
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page" default(1)
// @Param        pageSize query int false "Page size" default(20)
// @Param        status query string false "paid, shipped, completed or cancelled"
// @Param        orderBy query string false "Sort column" default(order_date)
// @Param        orderDir query string false "asc or desc" default(desc)
// @Success      200 {object} APIResponse[[]salesapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q salesapp.OrderListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	page, err := h.orderService.List(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize, page.TotalPages)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body salesapp.UpdateOrderStatusRequest true "Status"
// @Success      200 {object} APIResponse[salesapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req salesapp.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} PlainMessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, PlainMessageResponse{Message: "Order deleted successfully"})
}
