package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

func testOptions() HeatmapOptions {
	return HeatmapOptions{
		ZoomStart:   6,
		Radius:      21,
		Blur:        10,
		MinOpacity:  0.5,
		TileURL:     "https://tiles.example.com/{z}/{x}/{y}.png",
		Attribution: "Example tiles",
		Assets: Assets{
			LeafletCSS: "https://cdn.example.com/leaflet.css",
			LeafletJS:  "https://cdn.example.com/leaflet.js",
			HeatJS:     "https://cdn.example.com/leaflet-heat.js",
		},
	}
}

func testFrame() *models.DensityFrame {
	return &models.DensityFrame{
		Week:  9,
		Label: "May 30",
		Points: []models.HeatmapPoint{
			{Location: "A", Lat: 40.0, Lng: -88.0, Count: 4},
			{Location: "B", Lat: 42.0, Lng: -90.0, Count: 12},
		},
	}
}

func TestRenderMap(t *testing.T) {
	r, err := NewRenderer(testOptions())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	doc, err := r.RenderMap(testFrame(), models.LatLng{Lat: 41.0, Lng: -89.0})
	if err != nil {
		t.Fatalf("Failed to render map: %v", err)
	}
	if doc.Points != 2 || doc.Empty || doc.Week != 9 {
		t.Errorf("Unexpected document metadata: %+v", doc)
	}

	html := string(doc.HTML)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"L.heatLayer(",
		"[40,-88,4]",
		"[42,-90,12]",
		"radius:  21",
		"blur:  10",
		"minOpacity:  0.5",
		"scrollWheelZoom:  false",
		"zoomControl:  false",
		"L.control.scale()",
		"map.on('zoomend'",
		"heat.setOptions({ maxZoom: map.getZoom() })",
		"https://cdn.example.com/leaflet-heat.js",
		"Week 9 (May 30)",
	} {
		if !strings.Contains(strings.ReplaceAll(html, "  ", " "), strings.ReplaceAll(want, "  ", " ")) {
			t.Errorf("Expected map document to contain %q", want)
		}
	}
	if strings.Contains(html, "No data for this selection") {
		t.Error("Did not expect empty notice for a populated frame")
	}
}

func TestRenderMapIsDeterministic(t *testing.T) {
	r, err := NewRenderer(testOptions())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	first, err := r.RenderMap(testFrame(), models.LatLng{Lat: 41.0, Lng: -89.0})
	if err != nil {
		t.Fatalf("Failed to render map: %v", err)
	}
	second, err := r.RenderMap(testFrame(), models.LatLng{Lat: 41.0, Lng: -89.0})
	if err != nil {
		t.Fatalf("Failed to render map: %v", err)
	}
	if !bytes.Equal(first.HTML, second.HTML) {
		t.Error("Expected identical documents for identical input")
	}
}

func TestRenderMapEmptyFrame(t *testing.T) {
	r, err := NewRenderer(testOptions())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	frame := &models.DensityFrame{Week: 2, Label: "April 11", Points: []models.HeatmapPoint{}}
	doc, err := r.RenderMap(frame, models.LatLng{Lat: 39.8, Lng: -98.5})
	if err != nil {
		t.Fatalf("Failed to render empty map: %v", err)
	}
	if !doc.Empty || doc.Points != 0 {
		t.Errorf("Expected empty document, got %+v", doc)
	}
	if !strings.Contains(string(doc.HTML), "No data for this selection") {
		t.Error("Expected empty notice in document")
	}
	if !strings.Contains(string(doc.HTML), "L.heatLayer([]") && !strings.Contains(string(doc.HTML), "L.heatLayer( []") {
		t.Error("Expected an empty heat layer")
	}
}

func TestRenderPlaceholderEscapes(t *testing.T) {
	r, err := NewRenderer(testOptions())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	out, err := r.RenderPlaceholder("<b>No data</b>")
	if err != nil {
		t.Fatalf("Failed to render placeholder: %v", err)
	}
	if strings.Contains(string(out), "<b>") {
		t.Error("Expected message to be HTML escaped")
	}
}

func TestRenderDashboard(t *testing.T) {
	r, err := NewRenderer(testOptions())
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	page := DashboardPage{
		Title:     "Black Cutworm Dashboard",
		Weeks:     []models.WeekOption{{Week: 1, Label: "April 4"}, {Week: 2, Label: "April 11"}},
		Locations: []string{"Urbana", "Peoria"},
		MapPath:   "/api/v1/map",
		ChartPath: "/api/v1/series/chart",
	}
	out, err := r.RenderDashboard(page)
	if err != nil {
		t.Fatalf("Failed to render dashboard: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		"<h1>Black Cutworm Dashboard</h1>",
		`<option value="Urbana">Urbana</option>`,
		`label="April 11"`,
		`max="2"`,
		`src="/api/v1/map?week=1"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected dashboard to contain %q", want)
		}
	}
}
