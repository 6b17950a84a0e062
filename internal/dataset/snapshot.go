package dataset

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jengzang/trapcount-dashboard-go/internal/database"
	"github.com/jengzang/trapcount-dashboard-go/internal/repository"
)

func loadSnapshot(ctx context.Context, path string) (*Table, error) {
	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		return nil, loadErr(path, 0, "", err)
	}
	defer db.Close()

	observations, err := repository.NewObservationRepository(db).LoadAll(ctx)
	if err != nil {
		return nil, loadErr(path, 0, "", err)
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

// SaveSnapshot writes table to a SQLite snapshot at path, creating or
// migrating the schema first. sourcePath is recorded with the snapshot.
func SaveSnapshot(ctx context.Context, path, sourcePath string, table *Table, log zerolog.Logger) error {
	db, err := database.Open(database.Config{Path: path})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.NewMigrationManager(db, log).RunMigrations(ctx); err != nil {
		return err
	}

	return repository.NewObservationRepository(db).ReplaceAll(ctx, sourcePath, table.Observations())
}
