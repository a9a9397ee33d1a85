package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/loader"
)

var cleanOut string

var cleanCmd = &cobra.Command{
	Use:   "clean [raw.csv]",
	Short: "Prune and de-NaN a raw match CSV, store the matches",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cleanOut != "" {
			cfg.ProcessedPath = cleanOut
		}
		return runClean(rawPathArg(args))
	},
}

// rawPathArg resolves the raw CSV path: positional argument when given,
// configured input path otherwise.
func rawPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.InputPath
}

func init() {
	cleanCmd.Flags().StringVar(&cleanOut, "out", "", "processed CSV output path (overrides config)")
}

func runClean(rawPath string) error {
	df, err := loader.Load(rawPath)
	if err != nil {
		return err
	}
	before := df.Nrow()

	cleaned, err := loader.Clean(df, cfg.DropColumns)
	if err != nil {
		return err
	}
	logger.Infow("cleaned input", "rows_in", before, "rows_out", cleaned.Nrow())

	if err := loader.WriteCSV(cfg.ProcessedPath, cleaned); err != nil {
		return err
	}

	matches, err := loader.ToMatchRecords(cleaned)
	if err != nil {
		return err
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InsertMatches(matches); err != nil {
		return fmt.Errorf("store matches: %w", err)
	}

	fmt.Fprintf(os.Stderr, "cleaned %d -> %d rows, wrote %s (%d matches stored)\n",
		before, cleaned.Nrow(), cfg.ProcessedPath, len(matches))
	return nil
}
