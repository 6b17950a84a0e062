package models

// HeatmapPoint represents a single weighted point of a density frame
type HeatmapPoint struct {
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Count    int64   `json:"count"` // Heat weight
}

// LatLng is a coordinate pair in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the bounding box of a density frame
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// DensityFrame is the set of located, non-missing counts for one week
type DensityFrame struct {
	Week     int            `json:"week"`
	Label    string         `json:"label"` // Calendar label of the week
	Points   []HeatmapPoint `json:"points"`
	Count    int            `json:"count"`
	Total    int64          `json:"total"`
	MaxValue int64          `json:"max_value"`
	Centroid *LatLng        `json:"centroid,omitempty"` // nil when the frame is empty
	Bounds   *Bounds        `json:"bounds,omitempty"`
}

// Empty reports whether the frame has no points
func (f *DensityFrame) Empty() bool {
	return len(f.Points) == 0
}
