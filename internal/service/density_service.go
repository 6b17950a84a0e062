package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jengzang/trapcount-dashboard-go/internal/dataset"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/spatial"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
)

// DensityService builds per-week density frames and renders them as heat maps
type DensityService struct {
	table         *dataset.Table
	renderer      *viz.Renderer
	weekLabels    []string
	defaultCenter models.LatLng
}

// NewDensityService creates a new density service. weekLabels holds the
// calendar label of each week; defaultCenter is used when no location in
// the table has coordinates.
func NewDensityService(table *dataset.Table, renderer *viz.Renderer, weekLabels []string, defaultCenter models.LatLng) *DensityService {
	labels := make([]string, len(weekLabels))
	copy(labels, weekLabels)
	return &DensityService{
		table:         table,
		renderer:      renderer,
		weekLabels:    labels,
		defaultCenter: defaultCenter,
	}
}

// Weeks returns the week selector marks
func (s *DensityService) Weeks() []models.WeekOption {
	weeks := make([]models.WeekOption, models.WeekCount)
	for i := range weeks {
		weeks[i] = models.WeekOption{Week: i + 1, Label: s.label(i + 1)}
	}
	return weeks
}

func (s *DensityService) label(week int) string {
	if week-1 < len(s.weekLabels) {
		return s.weekLabels[week-1]
	}
	return models.WeekColumn(week)
}

// Frame projects (latitude, longitude, count) of week for every location,
// dropping rows where any of the three is missing. Table order is kept.
func (s *DensityService) Frame(week int) (*models.DensityFrame, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("%w: %d (expected 1..%d)", models.ErrInvalidWeek, week, models.WeekCount)
	}

	frame := &models.DensityFrame{
		Week:   week,
		Label:  s.label(week),
		Points: []models.HeatmapPoint{},
	}

	for _, o := range s.table.Observations() {
		count, ok := o.Count(week)
		if !ok || !o.HasCoordinates() {
			continue
		}
		frame.Points = append(frame.Points, models.HeatmapPoint{
			Location: o.Location,
			Lat:      o.Latitude.Float64,
			Lng:      o.Longitude.Float64,
			Count:    count,
		})
		frame.Total += count
		if count > frame.MaxValue {
			frame.MaxValue = count
		}
	}
	frame.Count = len(frame.Points)

	if centroid, err := Centroid(frame); err == nil {
		b := spatial.BoundingBox(spatial.FramePoints(frame))
		frame.Centroid = &centroid
		frame.Bounds = &b
	}

	return frame, nil
}

// Centroid returns the mean latitude and longitude of the frame's points,
// or ErrEmptyFrame when it has none.
func Centroid(frame *models.DensityFrame) (models.LatLng, error) {
	if frame.Empty() {
		return models.LatLng{}, fmt.Errorf("%w: week %d", models.ErrEmptyFrame, frame.Week)
	}
	c := spatial.Centroid(spatial.FramePoints(frame))
	return models.LatLng{Lat: c.Lat, Lng: c.Lon}, nil
}

// fallbackCenter is the mean of every located observation, or the
// configured default when none is located
func (s *DensityService) fallbackCenter() models.LatLng {
	var points []spatial.Point
	for _, o := range s.table.Observations() {
		if o.HasCoordinates() {
			points = append(points, spatial.Point{Lat: o.Latitude.Float64, Lon: o.Longitude.Float64})
		}
	}
	if len(points) == 0 {
		return s.defaultCenter
	}
	c := spatial.Centroid(points)
	return models.LatLng{Lat: c.Lat, Lng: c.Lon}
}

// RenderMap renders the heat map of week. A week without located counts
// renders an empty map at the fallback center instead of failing.
func (s *DensityService) RenderMap(week int) (*viz.MapDocument, error) {
	frame, err := s.Frame(week)
	if err != nil {
		return nil, err
	}

	center, err := Centroid(frame)
	if errors.Is(err, models.ErrEmptyFrame) {
		center = s.fallbackCenter()
	} else if err != nil {
		return nil, err
	}

	return s.renderer.RenderMap(frame, center)
}

// GeoJSON returns the frame of week as a GeoJSON feature collection
func (s *DensityService) GeoJSON(week int) ([]byte, error) {
	frame, err := s.Frame(week)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(spatial.FrameFeatureCollection(frame))
	if err != nil {
		return nil, fmt.Errorf("failed to encode week %d as GeoJSON: %w", week, err)
	}
	return data, nil
}

// Placeholder renders the page shown in place of a map that cannot be drawn
func (s *DensityService) Placeholder(message string) ([]byte, error) {
	return s.renderer.RenderPlaceholder(message)
}
