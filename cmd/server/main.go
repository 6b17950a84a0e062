package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jengzang/trapcount-dashboard-go/internal/config"
)

var (
	configPath string
	dataPath   string
	delimiter  string
	sheet      string
)

var rootCmd = &cobra.Command{
	Use:   "trapcount",
	Short: "Weekly insect-trap count dashboard",
	Long: `Serves a dashboard over weekly trap counts per location: a count series
per location and a weekly density heat map.

The observation table is read once at startup from a CSV, TSV, Excel
workbook or SQLite snapshot.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Observation table (.csv, .tsv, .xlsx, .db)")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", "", "Field delimiter for delimited text")
	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "Workbook sheet for .xlsx sources")
}

// loadConfig 加载配置: file and env first, then command-line flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = dataPath
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = delimiter
	}
	if flags.Changed("sheet") {
		cfg.Sheet = sheet
	}
	if flags.Changed("port") {
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
