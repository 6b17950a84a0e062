package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/jengzang/trapcount-dashboard-go/internal/dataset"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
)

// PlaceholderTitle is the series title shown when no location is selected
const PlaceholderTitle = "Select a location to see counts"

// SeriesService extracts per-location weekly series from the observation table
type SeriesService struct {
	table *dataset.Table
}

// NewSeriesService creates a new series service
func NewSeriesService(table *dataset.Table) *SeriesService {
	return &SeriesService{table: table}
}

// Series returns the weekly counts of location in ascending week order,
// skipping missing weeks. An empty location returns the placeholder view.
func (s *SeriesService) Series(location string) (*models.SeriesView, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return &models.SeriesView{
			Title:       PlaceholderTitle,
			Placeholder: true,
			Points:      []models.SeriesPoint{},
		}, nil
	}

	o, ok := s.table.Lookup(location)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrLocationNotFound, location)
	}

	points := make([]models.SeriesPoint, 0, models.WeekCount)
	for w := 1; w <= models.WeekCount; w++ {
		count, ok := o.Count(w)
		if !ok {
			continue
		}
		points = append(points, models.SeriesPoint{
			Week:  w,
			Label: models.WeekColumn(w),
			Count: count,
		})
	}

	return &models.SeriesView{
		Location: o.Location,
		Title:    fmt.Sprintf("Counts for %s", o.Location),
		Points:   points,
	}, nil
}

// RenderChart writes the series of location as a line chart
func (s *SeriesService) RenderChart(w io.Writer, location string, format viz.ChartFormat) error {
	view, err := s.Series(location)
	if err != nil {
		return err
	}
	return viz.RenderSeriesChart(w, view, format)
}

// Locations returns the selectable location keys
func (s *SeriesService) Locations() []string {
	return s.table.Locations()
}
