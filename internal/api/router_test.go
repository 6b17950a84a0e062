package api

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jengzang/trapcount-dashboard-go/internal/config"
	"github.com/jengzang/trapcount-dashboard-go/internal/dataset"
	"github.com/jengzang/trapcount-dashboard-go/internal/middleware"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/service"
	"github.com/jengzang/trapcount-dashboard-go/internal/viz"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testDeps(t *testing.T, cfg *config.Config) Deps {
	t.Helper()

	obs := models.Observation{
		Location:  "Urbana",
		Latitude:  sql.NullFloat64{Float64: 40.11, Valid: true},
		Longitude: sql.NullFloat64{Float64: -88.21, Valid: true},
	}
	obs.Counts[0] = sql.NullInt64{Int64: 3, Valid: true}

	table, err := dataset.NewTable([]models.Observation{obs})
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	renderer, err := viz.NewRenderer(viz.HeatmapOptions{ZoomStart: 6, Radius: 21, Blur: 10, MinOpacity: 0.5})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	return Deps{
		Series:   service.NewSeriesService(table),
		Density:  service.NewDensityService(table, renderer, cfg.WeekLabels, models.LatLng{}),
		Renderer: renderer,
		Limiter:  NewLimiter(cfg),
	}
}

func get(r http.Handler, target string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mutate {
		m(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	cfg := config.Default()
	r := SetupRouter(cfg, testDeps(t, cfg), zerolog.New(io.Discard))

	tests := []struct {
		target string
		status int
	}{
		{"/health", http.StatusOK},
		{"/", http.StatusOK},
		{"/api/v1/locations", http.StatusOK},
		{"/api/v1/weeks", http.StatusOK},
		{"/api/v1/series?location=Urbana", http.StatusOK},
		{"/api/v1/series?location=Nowhere", http.StatusNotFound},
		{"/api/v1/series/chart?location=Urbana", http.StatusOK},
		{"/api/v1/map?week=1", http.StatusOK},
		{"/api/v1/map?week=12", http.StatusBadRequest},
		{"/api/v1/frames/1", http.StatusOK},
		{"/api/v1/frames/1/geojson", http.StatusOK},
		{"/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := get(r, tt.target)
		if w.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.target, tt.status, w.Code)
		}
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("%s: expected a request id header", tt.target)
		}
	}
}

func TestRoutesRequireToken(t *testing.T) {
	cfg := config.Default()
	cfg.JWTSecret = "s3cret"
	r := SetupRouter(cfg, testDeps(t, cfg), zerolog.New(io.Discard))

	if w := get(r, "/health"); w.Code != http.StatusOK {
		t.Errorf("Expected health to stay public, got %d", w.Code)
	}
	if w := get(r, "/api/v1/weeks"); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "viewer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	w := get(r, "/api/v1/weeks", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with bearer token, got %d", w.Code)
	}

	w = get(r, "/", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 with token cookie, got %d", w.Code)
	}
}

func TestRoutesRateLimited(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit = 2
	r := SetupRouter(cfg, testDeps(t, cfg), zerolog.New(io.Discard))

	for i := 0; i < 2; i++ {
		if w := get(r, "/health"); w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	if w := get(r, "/health"); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}
}
