package handler

import (
	"net/http"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	uploadService  *catalogapp.UploadService
}

// NewProductHandler creates a new ProductHandler. uploadService may be nil
// when image storage is not configured.
func NewProductHandler(productService *catalogapp.ProductService, uploadService *catalogapp.UploadService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadService:  uploadService,
	}
}

// List godoc
// @Summary      List products
// @Description  Every product, newest first
// @Tags         products
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetByID godoc
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Lookup godoc
// @Summary      Resolve a product page
// @Description  Looks a product up by id or slug. Products without a slug get one on the way.
// @Description  redirect is set when an id was used for a product that has a slug.
// @Tags         products
// @Produce      json
// @Param        term path string true "Product ID or slug"
// @Success      200 {object} APIResponse[catalogapp.ProductPageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/lookup/{term} [get]
func (h *ProductHandler) Lookup(c *gin.Context) {
	page, err := h.productService.Lookup(c.Request.Context(), c.Param("term"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Replace a product
// @Description  Replaces every editable field. A blank slug is regenerated from the title.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Product deleted successfully"})
}

// CreateUploadURL godoc
// @Summary      Presign a product image upload
// @Description  Returns a presigned PUT URL and the public URL to store in the product's images
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UploadURLRequest true "Image content type"
// @Success      200 {object} APIResponse[catalogapp.UploadURLResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /products/upload-url [post]
func (h *ProductHandler) CreateUploadURL(c *gin.Context) {
	if h.uploadService == nil {
		h.Error(c, http.StatusServiceUnavailable, "STORAGE_DISABLED", "Image uploads are not configured")
		return
	}
	var req catalogapp.UploadURLRequest
	if !h.BindJSON(c, &req) {
		return
	}
	upload, err := h.uploadService.CreateUploadURL(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}
