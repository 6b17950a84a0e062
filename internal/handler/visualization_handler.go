package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/pkg/response"
)

const htmlContentType = "text/html; charset=utf-8"

// VisualizationHandler handles HTTP requests for weekly density maps
type VisualizationHandler struct {
	service *service.DensityService
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(service *service.DensityService) *VisualizationHandler {
	return &VisualizationHandler{service: service}
}

// GetMap handles GET /api/v1/map. The response is always an HTML document;
// failures render a placeholder page so the embedding frame stays usable.
func (h *VisualizationHandler) GetMap(c *gin.Context) {
	var filter models.MapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.placeholder(c, http.StatusBadRequest, err)
		return
	}

	// Default to the first week, as the slider does
	if filter.Week == 0 {
		filter.Week = 1
	}

	doc, err := h.service.RenderMap(filter.Week)
	if errors.Is(err, models.ErrInvalidWeek) {
		h.placeholder(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		h.placeholder(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, htmlContentType, doc.HTML)
}

func (h *VisualizationHandler) placeholder(c *gin.Context, status int, cause error) {
	c.Error(cause)
	page, err := h.service.Placeholder(NoDataMessage)
	if err != nil {
		c.String(status, NoDataMessage)
		return
	}
	c.Data(status, htmlContentType, page)
}

// GetFrame handles GET /api/v1/frames/:week
func (h *VisualizationHandler) GetFrame(c *gin.Context) {
	week, err := weekParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid week", err)
		return
	}

	frame, err := h.service.Frame(week)
	if errors.Is(err, models.ErrInvalidWeek) {
		response.BadRequest(c, "Invalid week", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to build frame", err)
		return
	}

	response.Success(c, frame)
}

// GetFrameGeoJSON handles GET /api/v1/frames/:week/geojson
func (h *VisualizationHandler) GetFrameGeoJSON(c *gin.Context) {
	week, err := weekParam(c)
	if err != nil {
		response.BadRequest(c, "Invalid week", err)
		return
	}

	data, err := h.service.GeoJSON(week)
	if errors.Is(err, models.ErrInvalidWeek) {
		response.BadRequest(c, "Invalid week", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to export frame", err)
		return
	}

	c.Data(http.StatusOK, "application/geo+json", data)
}

func weekParam(c *gin.Context) (int, error) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidWeek, c.Param("week"))
	}
	return week, nil
}
