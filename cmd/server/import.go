package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/trapcount-dashboard-go/internal/dataset"
	"github.com/jengzang/trapcount-dashboard-go/internal/logger"
)

var importOut string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Write an observation table to a SQLite snapshot",
	Long: `Loads an observation table from any supported source and writes it to a
SQLite snapshot that serve can load with --data <snapshot.db>.

An existing snapshot is replaced in a single transaction.`,
	Example: `  trapcount import --data counts.csv --out counts.db
  trapcount import --data counts.xlsx --sheet 2024 --out counts.db`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "Snapshot file to write")
	importCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	table, err := dataset.Load(ctx, cfg.DataPath, dataset.Options{
		Delimiter: cfg.DelimiterRune(),
		Sheet:     cfg.Sheet,
	})
	if err != nil {
		return err
	}

	if err := dataset.SaveSnapshot(ctx, importOut, cfg.DataPath, table, log); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Info().
		Str("source", cfg.DataPath).
		Str("snapshot", importOut).
		Int("locations", table.Len()).
		Msg("Snapshot written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d locations to %s\n", table.Len(), importOut)
	return nil
}
