package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
	"github.com/jengzang/trapcount-dashboard-go/pkg/response"
)

// NoDataMessage is shown in place of a view that cannot be produced
const NoDataMessage = "No data for this selection"

// SeriesHandler handles HTTP requests for location series
type SeriesHandler struct {
	service *service.SeriesService
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(service *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{service: service}
}

// GetSeries handles GET /api/v1/series
func (h *SeriesHandler) GetSeries(c *gin.Context) {
	var filter models.SeriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	view, err := h.service.Series(filter.Location)
	if errors.Is(err, models.ErrLocationNotFound) {
		response.NotFound(c, "Unknown location", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to get series", err)
		return
	}

	response.Success(c, view)
}

// GetSeriesChart handles GET /api/v1/series/chart
func (h *SeriesHandler) GetSeriesChart(c *gin.Context) {
	var filter models.SeriesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	format, err := viz.ParseChartFormat(filter.Format)
	if err != nil {
		response.BadRequest(c, "Invalid chart format", err)
		return
	}

	var buf bytes.Buffer
	status := http.StatusOK
	err = h.service.RenderChart(&buf, filter.Location, format)
	if errors.Is(err, models.ErrLocationNotFound) {
		c.Error(err)
		status = http.StatusNotFound
		buf.Reset()
		err = viz.RenderSeriesChart(&buf, &models.SeriesView{Title: NoDataMessage, Placeholder: true}, format)
	}
	if err != nil {
		response.InternalError(c, "Failed to render chart", err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(status, format.ContentType(), buf.Bytes())
}
