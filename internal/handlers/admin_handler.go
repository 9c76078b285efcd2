package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

// AdminHandler serves the admin back office: SEO manager accounts and the
// analytics dashboard.
type AdminHandler struct {
	SEO              *services.SEOService
	AnalyticsService *services.AnalyticsService
}

func NewAdminHandler(seo *services.SEOService, analytics *services.AnalyticsService) *AdminHandler {
	return &AdminHandler{SEO: seo, AnalyticsService: analytics}
}

func (h *AdminHandler) ListSEOManagers(c *gin.Context) {
	list, err := h.SEO.ListManagers(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to list SEO managers", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminHandler) CreateSEOManager(c *gin.Context) {
	var req dtos.SEOManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.SEO.CreateManager(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "Failed to create SEO manager", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) DeleteSEOManager(c *gin.Context) {
	if err := h.SEO.DeleteManager(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete SEO manager", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	sum, err := h.AnalyticsService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to build analytics", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
