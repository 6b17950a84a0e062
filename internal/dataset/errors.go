package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataLoad is wrapped by every error returned from Load
var ErrDataLoad = errors.New("data load failed")

// LoadError describes why an observation table could not be loaded
type LoadError struct {
	Path   string
	Row    int    // 1-based, header is row 1; 0 when not row specific
	Column string // empty when not column specific
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("load ")
	b.WriteString(e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrDataLoad, e.Err}
}

func loadErr(path string, row int, column string, err error) *LoadError {
	return &LoadError{Path: path, Row: row, Column: column, Err: err}
}
