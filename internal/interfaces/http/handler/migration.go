package handler

import (
	"net/http"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// MigrationHandler exposes the catalog data backfills to the admin hub
type MigrationHandler struct {
	BaseHandler
	migrationService *catalogapp.MigrationService
}

// NewMigrationHandler creates a new MigrationHandler
func NewMigrationHandler(migrationService *catalogapp.MigrationService) *MigrationHandler {
	return &MigrationHandler{migrationService: migrationService}
}

// CategoryStatus godoc
// @Summary      Count products on the legacy category field
// @Tags         migrations
// @Produce      json
// @Success      200 {object} catalogapp.CategoryMigrationStatus
// @Security     CookieAuth
// @Router       /migrations/categories [get]
func (h *MigrationHandler) CategoryStatus(c *gin.Context) {
	status, err := h.migrationService.CategoryStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// MigrateCategories godoc
// @Summary      Move legacy categories into the categories list
// @Tags         migrations
// @Produce      json
// @Success      200 {object} catalogapp.CategoryMigrationReport
// @Security     CookieAuth
// @Router       /migrations/categories [post]
func (h *MigrationHandler) MigrateCategories(c *gin.Context) {
	report, err := h.migrationService.MigrateCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// BackfillSlugs godoc
// @Summary      Generate missing product slugs
// @Tags         migrations
// @Produce      json
// @Success      200 {object} catalogapp.SlugBackfillReport
// @Security     CookieAuth
// @Router       /migrations/slugs [get]
func (h *MigrationHandler) BackfillSlugs(c *gin.Context) {
	report, err := h.migrationService.BackfillSlugs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
