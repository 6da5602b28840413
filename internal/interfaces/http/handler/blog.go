package handler

import (
	"net/http"

	contentapp "github.com/archerandash/storefront/internal/application/content"
	"github.com/archerandash/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// BlogHandler handles the inspiration blog
type BlogHandler struct {
	BaseHandler
	blogService *contentapp.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService *contentapp.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// List godoc
// @Summary      List blog posts
// @Description  Ordered by publish date, newest first
// @Tags         blog
// @Produce      json
// @Param        status query string false "draft or published"
// @Success      200 {object} APIResponse[[]contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /blog [get]
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.blogService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, posts)
}

// Get godoc
// @Summary      Get a blog post
// @Tags         blog
// @Produce      json
// @Param        term path string true "Post ID or slug"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /blog/{term} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blogService.Get(c.Request.Context(), c.Param("term"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Create godoc
// @Summary      Create a blog post
// @Description  The author defaults to the signed-in admin
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        request body contentapp.PostRequest true "Post"
// @Success      201 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /blog [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req contentapp.PostRequest
	if !h.BindJSON(c, &req) {
		return
	}
	post, err := h.blogService.Create(c.Request.Context(), req, middleware.GetUserEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

// Update godoc
// @Summary      Replace a blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body contentapp.PostRequest true "Post"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /blog/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req contentapp.PostRequest
	if !h.BindJSON(c, &req) {
		return
	}
	post, err := h.blogService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Delete godoc
// @Summary      Delete a blog post
// @Tags         blog
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} PlainMessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     CookieAuth
// @Router       /blog/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, PlainMessageResponse{Message: "Post deleted successfully"})
}
