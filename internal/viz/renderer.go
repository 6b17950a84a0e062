package viz

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// mapElementID is fixed so identical input renders byte-identical documents
const mapElementID = "heatmap"

// Assets are the script and stylesheet URLs referenced by the map document
type Assets struct {
	LeafletCSS string
	LeafletJS  string
	HeatJS     string
}

// HeatmapOptions configures the heat layer and base map
type HeatmapOptions struct {
	ZoomStart   int
	Radius      int
	Blur        int
	MinOpacity  float64
	TileURL     string
	Attribution string
	Assets      Assets
}

// MapDocument is a rendered, self-contained heat-map page
type MapDocument struct {
	Week   int
	Center models.LatLng
	Empty  bool // no located counts; Center is a fallback
	Points int
	HTML   []byte
}

// Renderer renders map documents and dashboard pages from embedded templates.
// It holds no per-request state and is safe for concurrent use.
type Renderer struct {
	opts        HeatmapOptions
	heatmap     *template.Template
	placeholder *template.Template
	dashboard   *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer(opts HeatmapOptions) (*Renderer, error) {
	parse := func(name string) (*template.Template, error) {
		t, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		return t, nil
	}

	r := &Renderer{opts: opts}
	var err error
	if r.heatmap, err = parse("heatmap.html.tmpl"); err != nil {
		return nil, err
	}
	if r.placeholder, err = parse("placeholder.html.tmpl"); err != nil {
		return nil, err
	}
	if r.dashboard, err = parse("dashboard.html.tmpl"); err != nil {
		return nil, err
	}
	return r, nil
}

type heatmapData struct {
	Title           string
	MapID           string
	Center          models.LatLng
	Zoom            int
	ScrollWheelZoom bool
	ZoomControl     bool
	ScaleControl    bool
	TileURL         string
	Attribution     string
	Radius          int
	Blur            int
	MinOpacity      float64
	Points          [][3]float64 // [lat, lng, weight]
	Empty           bool
	Assets          Assets
}

// RenderMap renders frame as a heat-map document centred on center.
// Scroll-wheel zoom and the zoom control are disabled, the scale control
// is shown, and the heat layer's maxZoom follows the map zoom.
func (r *Renderer) RenderMap(frame *models.DensityFrame, center models.LatLng) (*MapDocument, error) {
	points := make([][3]float64, len(frame.Points))
	for i, p := range frame.Points {
		points[i] = [3]float64{p.Lat, p.Lng, float64(p.Count)}
	}

	data := heatmapData{
		Title:           fmt.Sprintf("%s (%s)", models.WeekColumn(frame.Week), frame.Label),
		MapID:           mapElementID,
		Center:          center,
		Zoom:            r.opts.ZoomStart,
		ScrollWheelZoom: false,
		ZoomControl:     false,
		ScaleControl:    true,
		TileURL:         r.opts.TileURL,
		Attribution:     r.opts.Attribution,
		Radius:          r.opts.Radius,
		Blur:            r.opts.Blur,
		MinOpacity:      r.opts.MinOpacity,
		Points:          points,
		Empty:           frame.Empty(),
		Assets:          r.opts.Assets,
	}

	var buf bytes.Buffer
	if err := r.heatmap.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render map for week %d: %w", frame.Week, err)
	}

	return &MapDocument{
		Week:   frame.Week,
		Center: center,
		Empty:  frame.Empty(),
		Points: len(points),
		HTML:   buf.Bytes(),
	}, nil
}

// RenderPlaceholder renders a minimal page showing message
func (r *Renderer) RenderPlaceholder(message string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.placeholder.Execute(&buf, message); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}
	return buf.Bytes(), nil
}

// DashboardPage is the data shown by the dashboard page
type DashboardPage struct {
	Title     string
	Weeks     []models.WeekOption
	Locations []string
	MapPath   string
	ChartPath string
}

// RenderDashboard renders the dashboard page
func (r *Renderer) RenderDashboard(page DashboardPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dashboard.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}
