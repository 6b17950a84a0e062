package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "counts.csv", sampleCSV)

	table, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	if table.Len() != 4 {
		t.Fatalf("Expected 4 locations, got %d", table.Len())
	}

	want := []string{"Urbana", "Peoria", "Carbondale", "Nowhere"}
	got := table.Locations()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Location %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	urbana, ok := table.Lookup("Urbana")
	if !ok {
		t.Fatal("Expected Urbana to be present")
	}
	if !urbana.HasCoordinates() || urbana.Latitude.Float64 != 40.11 {
		t.Errorf("Unexpected Urbana coordinates: %+v %+v", urbana.Latitude, urbana.Longitude)
	}
	if c, ok := urbana.Count(1); !ok || c != 5 {
		t.Errorf("Week 1: expected 5, got %d (present=%v)", c, ok)
	}
	for _, w := range []int{2, 6, 9} {
		if _, ok := urbana.Count(w); ok {
			t.Errorf("Week %d: expected missing value", w)
		}
	}
	if c, ok := urbana.Count(4); !ok || c != 0 {
		t.Errorf("Week 4: expected present zero, got %d (present=%v)", c, ok)
	}

	nowhere, _ := table.Lookup("Nowhere")
	if nowhere.HasCoordinates() {
		t.Error("Expected Nowhere to have no coordinates")
	}
}

func TestLoadTSVAndColumnOrder(t *testing.T) {
	data := "Week 9\tWeek 8\tWeek 7\tWeek 6\tWeek 5\tWeek 4\tWeek 3\tWeek 2\tWeek 1\tLongitude\tLatitude\tLocation\tNotes\n" +
		"9\t8\t7\t6\t5\t4\t3\t2\t1.0\t-88.2\t40.1\tUrbana\tfield edge\n"
	path := writeTemp(t, "counts.tsv", data)

	table, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Failed to load TSV: %v", err)
	}

	o, _ := table.Lookup("Urbana")
	for w := 1; w <= models.WeekCount; w++ {
		if c, ok := o.Count(w); !ok || c != int64(w) {
			t.Errorf("Week %d: expected %d, got %d", w, w, c)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	header := "Location,Latitude,Longitude,Week 1,Week 2,Week 3,Week 4,Week 5,Week 6,Week 7,Week 8,Week 9\n"

	tests := []struct {
		name    string
		content string
		row     int
		column  string
	}{
		{"missing column", "Location,Latitude,Longitude,Week 1\nA,1,1,1\n", 1, ""},
		{"negative count", header + "A,40,-88,-1,,,,,,,,\n", 2, "Week 1"},
		{"fractional count", header + "A,40,-88,1.5,,,,,,,,\n", 2, "Week 1"},
		{"bad number", header + "A,40,-88,1,x,,,,,,,\n", 2, "Week 2"},
		{"latitude out of range", header + "A,95,-88,1,,,,,,,,\n", 2, "Latitude"},
		{"longitude out of range", header + "A,40,-188,1,,,,,,,,\n", 2, "Longitude"},
		{"empty location", header + ",40,-88,1,,,,,,,,\n", 2, "Location"},
		{"duplicate location", header + "A,40,-88,1,,,,,,,,\nA,41,-88,1,,,,,,,,\n", 3, "Location"},
		{"no rows", header, 0, ""},
		{"empty file", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.csv", tt.content)
			_, err := Load(context.Background(), path, Options{})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrDataLoad) {
				t.Errorf("Expected ErrDataLoad, got %v", err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Expected *LoadError, got %T", err)
			}
			if le.Row != tt.row || le.Column != tt.column {
				t.Errorf("Expected row %d column %q, got row %d column %q (%v)", tt.row, tt.column, le.Row, le.Column, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), Options{})
	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("Expected ErrDataLoad, got %v", err)
	}

	_, err = Load(context.Background(), "", Options{})
	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("Expected ErrDataLoad for empty path, got %v", err)
	}

	path := writeTemp(t, "counts.json", "{}")
	_, err = Load(context.Background(), path, Options{})
	if err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("Expected unsupported file type error, got %v", err)
	}
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Location", "Latitude", "Longitude", "Week 1", "Week 2", "Week 3", "Week 4", "Week 5", "Week 6", "Week 7", "Week 8", "Week 9"},
		{"Urbana", 40.11, -88.21, 5, nil, 7, 0, 2, nil, 1, 3, nil},
		{"Peoria", 40.69, -89.59, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to build cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cellName, &r); err != nil {
			t.Fatalf("Failed to write row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "counts.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}

	table, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Failed to load workbook: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Expected 2 locations, got %d", table.Len())
	}

	urbana, _ := table.Lookup("Urbana")
	if c, ok := urbana.Count(3); !ok || c != 7 {
		t.Errorf("Week 3: expected 7, got %d", c)
	}
	if _, ok := urbana.Count(2); ok {
		t.Error("Week 2: expected missing value")
	}
	if urbana.Longitude.Float64 != -88.21 {
		t.Errorf("Expected longitude -88.21, got %f", urbana.Longitude.Float64)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := writeTemp(t, "counts.csv", sampleCSV)

	table, err := Load(ctx, source, Options{})
	if err != nil {
		t.Fatalf("Failed to load CSV: %v", err)
	}

	snapshot := filepath.Join(t.TempDir(), "counts.db")
	if err := SaveSnapshot(ctx, snapshot, source, table, zerolog.Nop()); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}
	// Saving twice replaces rather than duplicates
	if err := SaveSnapshot(ctx, snapshot, source, table, zerolog.Nop()); err != nil {
		t.Fatalf("Failed to save snapshot again: %v", err)
	}

	loaded, err := Load(ctx, snapshot, Options{})
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	want := table.Observations()
	got := loaded.Observations()
	if len(got) != len(want) {
		t.Fatalf("Expected %d observations, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Observation %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
