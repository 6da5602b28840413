package handler

import (
	"net/http"

	"github.com/archerandash/storefront/internal/application/seo"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SEOHandler serves the merchant feed and the crawler files
type SEOHandler struct {
	seoService *seo.Service
}

// NewSEOHandler creates a new SEOHandler
func NewSEOHandler(seoService *seo.Service) *SEOHandler {
	return &SEOHandler{seoService: seoService}
}

// FeedErrorResponse is returned when the feed cannot be built
// @Description Feed failure
type FeedErrorResponse struct {
	Error string `json:"error" example:"Failed to generate feed"`
}

// Feed godoc
// @Summary      Google Merchant product feed
// @Description  RSS 2.0 with the Google base namespace. Products without a price or image are left out.
// @Tags         seo
// @Produce      xml
// @Success      200 {string} string "RSS document"
// @Failure      500 {object} FeedErrorResponse
// @Router       /feed [get]
func (h *SEOHandler) Feed(c *gin.Context) {
	body, err := h.seoService.MerchantFeed(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Error("Failed to generate feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, FeedErrorResponse{Error: "Failed to generate feed"})
		return
	}
	c.Header("Cache-Control", seo.FeedCacheControl)
	c.Data(http.StatusOK, seo.FeedContentType, body)
}

// Sitemap serves /sitemap.xml
func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := h.seoService.Sitemap(c.Request.Context())
	if err != nil {
		logger.GetGinLogger(c).Error("Failed to generate sitemap", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to generate sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots serves /robots.txt
func (h *SEOHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.seoService.Robots())
}
