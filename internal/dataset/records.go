package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
	"github.com/jengzang/trapcount-dashboard-go/internal/spatial"
)

const (
	columnLocation  = "Location"
	columnLatitude  = "Latitude"
	columnLongitude = "Longitude"
)

// Tokens read as a missing value, compared case-insensitively
var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"<na>": true,
	"#n/a": true,
	"-":    true,
}

// columnIndex maps the required column names to their position in a header
type columnIndex struct {
	location  int
	latitude  int
	longitude int
	weeks     [models.WeekCount]int
}

func requiredColumns() []string {
	cols := []string{columnLocation, columnLatitude, columnLongitude}
	for w := 1; w <= models.WeekCount; w++ {
		cols = append(cols, models.WeekColumn(w))
	}
	return cols
}

func parseHeader(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns() {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	idx := columnIndex{
		location:  pos[columnLocation],
		latitude:  pos[columnLatitude],
		longitude: pos[columnLongitude],
	}
	for w := 1; w <= models.WeekCount; w++ {
		idx.weeks[w-1] = pos[models.WeekColumn(w)]
	}
	return idx, nil
}

// parseRecords converts a header and data rows into a table.
// Rows whose cells are all blank are skipped.
func parseRecords(path string, header []string, rows [][]string) (*Table, error) {
	idx, err := parseHeader(header)
	if err != nil {
		return nil, loadErr(path, 1, "", err)
	}

	var observations []models.Observation
	seen := make(map[string]int)
	for i, row := range rows {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}

		o, err := parseObservation(idx, row)
		if err != nil {
			var ce *cellError
			if errors.As(err, &ce) {
				return nil, loadErr(path, rowNum, ce.column, ce.err)
			}
			return nil, loadErr(path, rowNum, "", err)
		}
		if prev, dup := seen[o.Location]; dup {
			return nil, loadErr(path, rowNum, columnLocation,
				fmt.Errorf("duplicate location %q (first seen on row %d)", o.Location, prev))
		}
		seen[o.Location] = rowNum
		observations = append(observations, o)
	}

	if len(observations) == 0 {
		return nil, loadErr(path, 0, "", errNoRows)
	}

	table, err := NewTable(observations)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	return table, nil
}

var errNoRows = errors.New("no data rows")

type cellError struct {
	column string
	err    error
}

func (e *cellError) Error() string {
	return fmt.Sprintf("column %q: %v", e.column, e.err)
}

func parseObservation(idx columnIndex, row []string) (models.Observation, error) {
	var o models.Observation

	o.Location = strings.TrimSpace(cell(row, idx.location))
	if o.Location == "" || isMissing(o.Location) {
		return o, &cellError{column: columnLocation, err: errors.New("empty location")}
	}

	lat, ok, err := parseFloat(cell(row, idx.latitude))
	if err != nil {
		return o, &cellError{column: columnLatitude, err: err}
	}
	if ok {
		if !spatial.ValidLatitude(lat) {
			return o, &cellError{column: columnLatitude, err: fmt.Errorf("latitude %v out of range", lat)}
		}
		o.Latitude.Float64, o.Latitude.Valid = lat, true
	}

	lon, ok, err := parseFloat(cell(row, idx.longitude))
	if err != nil {
		return o, &cellError{column: columnLongitude, err: err}
	}
	if ok {
		if !spatial.ValidLongitude(lon) {
			return o, &cellError{column: columnLongitude, err: fmt.Errorf("longitude %v out of range", lon)}
		}
		o.Longitude.Float64, o.Longitude.Valid = lon, true
	}

	for w := 1; w <= models.WeekCount; w++ {
		count, ok, err := parseCount(cell(row, idx.weeks[w-1]))
		if err != nil {
			return o, &cellError{column: models.WeekColumn(w), err: err}
		}
		if ok {
			o.Counts[w-1].Int64, o.Counts[w-1].Valid = count, true
		}
	}

	return o, nil
}

// cell returns the value at i; ragged rows read as missing
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isMissing(s string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(s))]
}

func parseFloat(s string) (float64, bool, error) {
	if isMissing(s) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return v, true, nil
}

// maxCount is the largest count representable exactly as a float64
const maxCount = 1 << 53

func parseCount(s string) (int64, bool, error) {
	v, ok, err := parseFloat(s)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v < 0 {
		return 0, false, fmt.Errorf("negative count %q", s)
	}
	if v != math.Trunc(v) || v > maxCount {
		return 0, false, fmt.Errorf("count %q is not a whole number", s)
	}
	return int64(v), true, nil
}
