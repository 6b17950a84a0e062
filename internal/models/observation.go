package models

import (
	"database/sql"
	"fmt"
)

// WeekCount is the number of weekly count columns in an observation table
const WeekCount = 9

// WeekColumn returns the table column name for a 1-based week index
func WeekColumn(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// ValidWeek reports whether week is a 1-based week index present in the table
func ValidWeek(week int) bool {
	return week >= 1 && week <= WeekCount
}

// Observation is one monitored location with its weekly trap counts.
// Counts[0] holds Week 1.
type Observation struct {
	Location  string
	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
	Counts    [WeekCount]sql.NullInt64
}

// Count returns the count for a 1-based week and whether it is present
func (o Observation) Count(week int) (int64, bool) {
	if !ValidWeek(week) {
		return 0, false
	}
	c := o.Counts[week-1]
	return c.Int64, c.Valid
}

// HasCoordinates reports whether both latitude and longitude are present
func (o Observation) HasCoordinates() bool {
	return o.Latitude.Valid && o.Longitude.Valid
}
