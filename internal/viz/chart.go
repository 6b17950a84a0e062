package viz

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// ChartFormat is an output format for series charts
type ChartFormat string

const (
	ChartSVG ChartFormat = "svg"
	ChartPNG ChartFormat = "png"
)

// ParseChartFormat parses a format name; empty selects SVG
func ParseChartFormat(s string) (ChartFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "svg":
		return ChartSVG, nil
	case "png":
		return ChartPNG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}

// ContentType returns the MIME type of the format
func (f ChartFormat) ContentType() string {
	if f == ChartPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// RenderSeriesChart draws view as a line chart of count by week.
// Axes are fixed to weeks 1..9 and a zero-based count range so that
// placeholders, single points and flat series all render.
func RenderSeriesChart(w io.Writer, view *models.SeriesView, format ChartFormat) error {
	ticks := make([]chart.Tick, models.WeekCount)
	for i := range ticks {
		ticks[i] = chart.Tick{Value: float64(i + 1), Label: models.WeekColumn(i + 1)}
	}

	var maxCount int64
	xs := make([]float64, 0, len(view.Points))
	ys := make([]float64, 0, len(view.Points))
	for _, p := range view.Points {
		xs = append(xs, float64(p.Week))
		ys = append(ys, float64(p.Count))
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}

	style := chart.Style{
		StrokeColor: chart.ColorBlue,
		StrokeWidth: 2,
		DotColor:    chart.ColorBlue,
		DotWidth:    3,
	}
	if len(xs) == 0 {
		// go-chart needs a series to lay out axes; draw an invisible baseline
		for i := 1; i <= models.WeekCount; i++ {
			xs = append(xs, float64(i))
			ys = append(ys, 0)
		}
		style = chart.Style{StrokeColor: chart.ColorTransparent, StrokeWidth: 0, DotWidth: 0}
	}

	graph := chart.Chart{
		Title:  view.Title,
		Width:  640,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Week",
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(models.WeekCount) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: niceMax(maxCount)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    view.Location,
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}

	renderer := chart.SVG
	if format == ChartPNG {
		renderer = chart.PNG
	}
	if err := graph.Render(renderer, w); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", view.Title, err)
	}
	return nil
}

// niceMax leaves headroom above the largest count and never returns zero
func niceMax(maxCount int64) float64 {
	if maxCount <= 0 {
		return 1
	}
	return float64(maxCount) * 1.1
}
