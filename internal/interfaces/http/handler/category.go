package handler

import (
	"net/http"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles categories and the category-driven storefront pages
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriesResponse is the body of the category list
// @Description Categories sorted by name
type CategoriesResponse struct {
	Success    bool                          `json:"success" example:"true"`
	Categories []catalogapp.CategoryResponse `json:"categories"`
}

// CategoryResponse is the body of category create and update
// @Description A single category
type CategoryResponse struct {
	Success  bool                        `json:"success" example:"true"`
	Category catalogapp.CategoryResponse `json:"category"`
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} CategoriesResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoriesResponse{Success: true, Categories: categories})
}

// Create godoc
// @Summary      Create a category
// @Description  The slug is derived from the name and must be unique
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CategoryRequest true "Category"
// @Success      201 {object} CategoryResponse
// @Failure      400 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CategoryResponse{Success: true, Category: *category})
}

// Update godoc
// @Summary      Rename or move a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.UpdateCategoryRequest true "Category"
// @Success      200 {object} CategoryResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /categories [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, CategoryResponse{Success: true, Category: *category})
}

// Delete godoc
// @Summary      Delete a category
// @Description  Product links are removed and children become top-level
// @Tags         categories
// @Produce      json
// @Param        id query string true "Category ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /categories [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Collections godoc
// @Summary      List collections
// @Description  Top-level categories with their children
// @Tags         collections
// @Produce      json
// @Success      200 {object} APIResponse[[]catalogapp.CollectionSummary]
// @Router       /collections [get]
func (h *CategoryHandler) Collections(c *gin.Context) {
	collections, err := h.categoryService.Collections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collections)
}

// Collection godoc
// @Summary      Get a collection page
// @Description  The category, its subcategories and the products in either
// @Tags         collections
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} APIResponse[catalogapp.CollectionResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /collections/{slug} [get]
func (h *CategoryHandler) Collection(c *gin.Context) {
	collection, err := h.categoryService.Collection(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Shop godoc
// @Summary      Get the shop page
// @Description  Products filtered by subcategory, else by category and its children, else all
// @Tags         collections
// @Produce      json
// @Param        category query string false "Category slug"
// @Param        subcategory query string false "Subcategory slug"
// @Success      200 {object} APIResponse[catalogapp.ShopResponse]
// @Router       /shop [get]
func (h *CategoryHandler) Shop(c *gin.Context) {
	var q catalogapp.ShopQuery
	if !h.BindQuery(c, &q) {
		return
	}
	shop, err := h.categoryService.Shop(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}
