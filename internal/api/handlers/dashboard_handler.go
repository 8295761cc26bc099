package handlers

import (
	"net/http"

	"promanager-backend/internal/api/middleware"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ============================================
// Dashboard Handler
// ============================================

type DashboardHandler struct {
	dashboardService service.DashboardService
}

// Global - System-wide stats, identical for every authenticated caller
// GET /dashboard/stats
func (h *DashboardHandler) Global(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	stats, err := h.dashboardService.Global(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Chef - Stats over the projects the caller created
// GET /dashboard/chef
func (h *DashboardHandler) Chef(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Chef(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Membre - Stats over the caller's projects and assigned tasks
// GET /dashboard/membre
func (h *DashboardHandler) Membre(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Membre(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
