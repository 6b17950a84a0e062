package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/trapcount-dashboard-go/internal/database"
	"github.com/jengzang/trapcount-dashboard-go/internal/models"
)

// ObservationRepository handles database operations for observation snapshots
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *sql.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// ReplaceAll replaces the stored snapshot with observations, preserving their order
func (r *ObservationRepository) ReplaceAll(ctx context.Context, sourcePath string, observations []models.Observation) error {
	return database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"weekly_counts", "observations"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		obsStmt, err := tx.PrepareContext(ctx,
			"INSERT INTO observations (location, position, latitude, longitude) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare observation insert: %w", err)
		}
		defer obsStmt.Close()

		countStmt, err := tx.PrepareContext(ctx,
			"INSERT INTO weekly_counts (location, week, count) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare count insert: %w", err)
		}
		defer countStmt.Close()

		for i, o := range observations {
			if _, err := obsStmt.ExecContext(ctx, o.Location, i, o.Latitude, o.Longitude); err != nil {
				return fmt.Errorf("failed to insert observation %q: %w", o.Location, err)
			}
			for w := 1; w <= models.WeekCount; w++ {
				count, ok := o.Count(w)
				if !ok {
					continue
				}
				if _, err := countStmt.ExecContext(ctx, o.Location, w, count); err != nil {
					return fmt.Errorf("failed to insert %s for %q: %w", models.WeekColumn(w), o.Location, err)
				}
			}
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO snapshot_meta (id, source_path, row_count, imported_at)
			VALUES (1, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET source_path = excluded.source_path,
				row_count = excluded.row_count, imported_at = excluded.imported_at`,
			sourcePath, len(observations))
		if err != nil {
			return fmt.Errorf("failed to record snapshot metadata: %w", err)
		}

		return nil
	})
}

// LoadAll returns every stored observation in import order
func (r *ObservationRepository) LoadAll(ctx context.Context) ([]models.Observation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT location, latitude, longitude FROM observations ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []models.Observation
	index := make(map[string]int)
	for rows.Next() {
		var o models.Observation
		if err := rows.Scan(&o.Location, &o.Latitude, &o.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		index[o.Location] = len(observations)
		observations = append(observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	countRows, err := r.db.QueryContext(ctx, "SELECT location, week, count FROM weekly_counts")
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly counts: %w", err)
	}
	defer countRows.Close()

	for countRows.Next() {
		var (
			location string
			week     int
			count    int64
		)
		if err := countRows.Scan(&location, &week, &count); err != nil {
			return nil, fmt.Errorf("failed to scan weekly count: %w", err)
		}
		i, ok := index[location]
		if !ok || !models.ValidWeek(week) {
			continue
		}
		observations[i].Counts[week-1] = sql.NullInt64{Int64: count, Valid: true}
	}
	if err := countRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate weekly counts: %w", err)
	}

	return observations, nil
}

// SourcePath returns the path the snapshot was imported from
func (r *ObservationRepository) SourcePath(ctx context.Context) (string, error) {
	var source string
	err := r.db.QueryRowContext(ctx, "SELECT source_path FROM snapshot_meta WHERE id = 1").Scan(&source)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query snapshot metadata: %w", err)
	}
	return source, nil
}
