package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
	"github.com/jengzang/trapcount-dashboard-go/pkg/response"
)

// DashboardHandler serves the dashboard page and its selector options
type DashboardHandler struct {
	title    string
	series   *service.SeriesService
	density  *service.DensityService
	renderer *viz.Renderer
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(title string, series *service.SeriesService, density *service.DensityService, renderer *viz.Renderer) *DashboardHandler {
	return &DashboardHandler{
		title:    title,
		series:   series,
		density:  density,
		renderer: renderer,
	}
}

// Index handles GET /
func (h *DashboardHandler) Index(c *gin.Context) {
	page, err := h.renderer.RenderDashboard(viz.DashboardPage{
		Title:     h.title,
		Weeks:     h.density.Weeks(),
		Locations: h.series.Locations(),
		MapPath:   "/api/v1/map",
		ChartPath: "/api/v1/series/chart",
	})
	if err != nil {
		response.InternalError(c, "Failed to render dashboard", err)
		return
	}

	c.Data(http.StatusOK, htmlContentType, page)
}

// GetLocations handles GET /api/v1/locations
func (h *DashboardHandler) GetLocations(c *gin.Context) {
	locations := h.series.Locations()
	response.Success(c, gin.H{
		"data":  locations,
		"count": len(locations),
	})
}

// GetWeeks handles GET /api/v1/weeks
func (h *DashboardHandler) GetWeeks(c *gin.Context) {
	response.Success(c, h.density.Weeks())
}
