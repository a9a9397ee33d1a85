package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/loader"
	"github.com/refwatch/refmetrics/internal/pipeline"
	"github.com/refwatch/refmetrics/internal/report"
)

var (
	prepareIn  string
	prepareOut string
	prepareTop int
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the scaled (referee, team) dataset from a processed CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if prepareIn != "" {
			cfg.ProcessedPath = prepareIn
		}
		if prepareOut != "" {
			cfg.OutputPath = prepareOut
		}
		if cmd.Flags().Changed("top") {
			cfg.TopReferees = prepareTop
		}
		_, err := runPrepare()
		return err
	},
}

func init() {
	prepareCmd.Flags().StringVar(&prepareIn, "in", "", "processed CSV input path (overrides config)")
	prepareCmd.Flags().StringVar(&prepareOut, "out", "", "scaled CSV output path (overrides config)")
	prepareCmd.Flags().IntVar(&prepareTop, "top", 0, "number of busiest referees to keep (0 = all)")
}

func runPrepare() (*pipeline.Result, error) {
	df, err := loader.Load(cfg.ProcessedPath)
	if err != nil {
		return nil, err
	}
	matches, err := loader.ToMatchRecords(df)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(logger, cfg, matches)
	if err != nil {
		return nil, err
	}

	if err := loader.WriteScaled(cfg.OutputPath, res.Scaled); err != nil {
		return nil, err
	}

	db, err := openStorage()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.ReplaceRefereeStats(res.Referees, res.Stats, res.Scaled); err != nil {
		return nil, fmt.Errorf("store referee stats: %w", err)
	}

	report.PrintRefereeTable(os.Stdout, res.Referees, res.Stats)
	fmt.Fprintf(os.Stderr, "wrote %d scaled rows to %s\n", len(res.Scaled), cfg.OutputPath)
	return res, nil
}
