package models

// SeriesFilter represents query parameters for the series endpoints
type SeriesFilter struct {
	Location string `form:"location"`
	Format   string `form:"format"` // svg, png
}

// MapFilter represents query parameters for the map endpoint
type MapFilter struct {
	Week int `form:"week"`
}

// WeekOption is one mark of the week selector
type WeekOption struct {
	Week  int    `json:"week"`
	Label string `json:"label"`
}
