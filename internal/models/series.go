package models

// SeriesPoint is one (week, count) pair of a location's series
type SeriesPoint struct {
	Week  int    `json:"week"`
	Label string `json:"label"` // "Week N"
	Count int64  `json:"count"`
}

// SeriesView is the ordered weekly series for one location
type SeriesView struct {
	Location    string        `json:"location,omitempty"`
	Title       string        `json:"title"`
	Placeholder bool          `json:"placeholder"`
	Points      []SeriesPoint `json:"points"`
}
