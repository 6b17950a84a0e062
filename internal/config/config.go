package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// Config 应用配置
type Config struct {
	Port      string    `yaml:"port"`
	DataPath  string    `yaml:"data_path"`
	Delimiter string    `yaml:"delimiter"` // Single character; empty uses the file extension default
	Sheet     string    `yaml:"sheet"`     // Workbook sheet for .xlsx sources
	Title     string    `yaml:"title"`
	JWTSecret string    `yaml:"jwt_secret"` // Empty disables API authentication
	RateLimit int       `yaml:"rate_limit"` // Requests per minute per client IP; 0 disables
	Log       LogConfig `yaml:"log"`
	Map       MapConfig `yaml:"map"`
	// WeekLabels are the calendar labels of weeks 1..9
	WeekLabels []string `yaml:"week_labels"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// MapConfig 热力图配置
type MapConfig struct {
	ZoomStart     int        `yaml:"zoom_start"`
	Radius        int        `yaml:"radius"`
	Blur          int        `yaml:"blur"`
	MinOpacity    float64    `yaml:"min_opacity"`
	DefaultCenter [2]float64 `yaml:"default_center"` // [lat, lng] used when no coordinates are known
	TileURL       string     `yaml:"tile_url"`
	Attribution   string     `yaml:"attribution"`
	LeafletCSS    string     `yaml:"leaflet_css"`
	LeafletJS     string     `yaml:"leaflet_js"`
	HeatJS        string     `yaml:"heat_js"`
}

// DefaultWeekLabels are the sampling dates of the 9 trap weeks
var DefaultWeekLabels = []string{
	"April 4", "April 11", "April 18", "April 25",
	"May 2", "May 9", "May 16", "May 23", "May 30",
}

// Default 返回默认配置
func Default() *Config {
	labels := make([]string, len(DefaultWeekLabels))
	copy(labels, DefaultWeekLabels)

	return &Config{
		Port:      ":8050",
		Title:     "Black Cutworm Dashboard",
		RateLimit: 0,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Map: MapConfig{
			ZoomStart:     6,
			Radius:        21,
			Blur:          10,
			MinOpacity:    0.5,
			DefaultCenter: [2]float64{39.8283, -98.5795},
			TileURL:       "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution:   `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
			LeafletCSS:    "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css",
			LeafletJS:     "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js",
			HeatJS:        "https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js",
		},
		WeekLabels: labels,
	}
}

// Load 加载配置: defaults, then the YAML file named by CONFIG_FILE, then env vars
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit YAML file taking the place of CONFIG_FILE
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergeFile overlays the values present in a YAML file
func (c *Config) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		c.Port = port
	}
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv("DASHBOARD_TITLE"); v != "" {
		c.Title = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", v, err)
		}
		c.RateLimit = n
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 when unset
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == `\t` || c.Delimiter == "tab" {
		return '\t'
	}
	r := []rune(c.Delimiter)
	if len(r) == 0 {
		return 0
	}
	return r[0]
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataPath) == "" {
		errs = append(errs, errors.New("data path is required"))
	}
	if len([]rune(c.Delimiter)) > 1 && c.DelimiterRune() != '\t' {
		errs = append(errs, fmt.Errorf("delimiter %q must be a single character", c.Delimiter))
	}
	if len(c.WeekLabels) != models.WeekCount {
		errs = append(errs, fmt.Errorf("week_labels must have %d entries, got %d", models.WeekCount, len(c.WeekLabels)))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit must not be negative"))
	}
	if c.Map.ZoomStart < 0 || c.Map.ZoomStart > 22 {
		errs = append(errs, fmt.Errorf("map.zoom_start %d out of range 0..22", c.Map.ZoomStart))
	}
	if c.Map.Radius <= 0 || c.Map.Blur < 0 {
		errs = append(errs, errors.New("map.radius must be positive and map.blur non-negative"))
	}
	if c.Map.MinOpacity < 0 || c.Map.MinOpacity > 1 {
		errs = append(errs, fmt.Errorf("map.min_opacity %v out of range 0..1", c.Map.MinOpacity))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}

	return errors.Join(errs...)
}
