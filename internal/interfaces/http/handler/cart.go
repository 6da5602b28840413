package handler

import (
	"net/http"

	salesapp "github.com/archerandash/storefront/internal/application/sales"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartCookie names the cookie holding the shopper's cart id
const CartCookie = "cart_id"

// CartHandler handles the shopper's cart
type CartHandler struct {
	BaseHandler
	cartService *salesapp.CartService
	cookie      config.CookieConfig
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *salesapp.CartService, cookie config.CookieConfig) *CartHandler {
	return &CartHandler{cartService: cartService, cookie: cookie}
}

// cartID returns the cart id from the cookie, issuing a new one when the
// cookie is absent or not a UUID. The cookie is refreshed on every call so it
// lives as long as the cart.
func (h *CartHandler) cartID(c *gin.Context) string {
	id := cookieCartID(c)
	if id == "" {
		id = uuid.NewString()
	}
	setCookie(c, h.cookie, CartCookie, id, int(h.cookie.CartTTL.Seconds()), true)
	return id
}

// cookieCartID returns the cart id carried by the request, or "" when the
// cookie is missing or not a UUID
func cookieCartID(c *gin.Context) string {
	raw, err := c.Cookie(CartCookie)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

// Get godoc
// @Summary      Get the cart
// @Description  A cart_id cookie is issued when the request has none
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[salesapp.CartResponse]
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), h.cartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem godoc
// @Summary      Add a product size to the cart
// @Description  Adding a size already in the cart sums the quantities. Title and price come from the catalog.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body salesapp.AddCartItemRequest true "Item"
// @Success      200 {object} APIResponse[salesapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req salesapp.AddCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cart, err := h.cartService.Add(c.Request.Context(), h.cartID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary      Set the quantity of a cart line
// @Description  A quantity of zero removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        variantId path string true "Variant ID (<productId>-<size>)"
// @Param        request body salesapp.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} APIResponse[salesapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{variantId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req salesapp.UpdateCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), h.cartID(c), c.Param("variantId"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        variantId path string true "Variant ID (<productId>-<size>)"
// @Success      200 {object} APIResponse[salesapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /cart/items/{variantId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart, err := h.cartService.Remove(c.Request.Context(), h.cartID(c), c.Param("variantId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} SuccessResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), h.cartID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
