package models

import "errors"

var (
	// ErrLocationNotFound is returned for a location key absent from the table
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidWeek is returned for a week index outside 1..WeekCount
	ErrInvalidWeek = errors.New("invalid week")

	// ErrEmptyFrame is returned when a week has no located counts
	ErrEmptyFrame = errors.New("empty density frame")
)
