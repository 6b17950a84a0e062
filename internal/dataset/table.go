package dataset

import (
	"fmt"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// Table is the immutable in-memory observation table.
// It is safe for concurrent use; accessors return copies.
type Table struct {
	observations []models.Observation
	index        map[string]int
	locations    []string
}

// NewTable builds a table from observations in their given order.
// Location keys must be non-empty and unique.
func NewTable(observations []models.Observation) (*Table, error) {
	t := &Table{
		observations: make([]models.Observation, len(observations)),
		index:        make(map[string]int, len(observations)),
		locations:    make([]string, 0, len(observations)),
	}
	copy(t.observations, observations)

	for i, o := range t.observations {
		if o.Location == "" {
			return nil, fmt.Errorf("observation %d: empty location", i)
		}
		if _, dup := t.index[o.Location]; dup {
			return nil, fmt.Errorf("duplicate location %q", o.Location)
		}
		t.index[o.Location] = i
		t.locations = append(t.locations, o.Location)
	}

	return t, nil
}

// Len returns the number of locations
func (t *Table) Len() int {
	return len(t.observations)
}

// WeekCount returns the number of weekly count columns
func (t *Table) WeekCount() int {
	return models.WeekCount
}

// Locations returns the distinct location keys in table order
func (t *Table) Locations() []string {
	out := make([]string, len(t.locations))
	copy(out, t.locations)
	return out
}

// Lookup returns the observation for a location key
func (t *Table) Lookup(location string) (models.Observation, bool) {
	i, ok := t.index[location]
	if !ok {
		return models.Observation{}, false
	}
	return t.observations[i], true
}

// Observations returns a copy of every observation in table order
func (t *Table) Observations() []models.Observation {
	out := make([]models.Observation, len(t.observations))
	copy(out, t.observations)
	return out
}
