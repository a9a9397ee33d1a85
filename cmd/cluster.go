package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/cluster"
	"github.com/refwatch/refmetrics/internal/loader"
	"github.com/refwatch/refmetrics/internal/model"
	"github.com/refwatch/refmetrics/internal/plot"
	"github.com/refwatch/refmetrics/internal/report"
)

var (
	clusterIn   string
	clusterPlot string
	clusterEps  float64
	clusterMin  int
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "DBSCAN-cluster the scaled dataset and render a scatter plot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if clusterIn != "" {
			cfg.OutputPath = clusterIn
		}
		if clusterPlot != "" {
			cfg.PlotPath = clusterPlot
		}
		if cmd.Flags().Changed("eps") {
			cfg.Eps = clusterEps
		}
		if cmd.Flags().Changed("min-samples") {
			cfg.MinSamples = clusterMin
		}
		return runCluster()
	},
}

func init() {
	clusterCmd.Flags().StringVar(&clusterIn, "in", "", "scaled CSV input path (overrides config)")
	clusterCmd.Flags().StringVar(&clusterPlot, "plot", "", "HTML plot output path (overrides config)")
	clusterCmd.Flags().Float64Var(&clusterEps, "eps", 0, "DBSCAN neighborhood radius")
	clusterCmd.Flags().IntVar(&clusterMin, "min-samples", 0, "DBSCAN core point threshold")
}

func runCluster() error {
	stats, err := loader.ReadScaled(cfg.OutputPath)
	if err != nil {
		return err
	}
	return clusterStats(stats)
}

func clusterStats(stats []model.ScaledStat) error {
	assignments, err := cluster.Assign(stats, cfg.Eps, cfg.MinSamples)
	if err != nil {
		return err
	}
	logger.Infow("clustered dataset",
		"rows", len(assignments), "eps", cfg.Eps, "min_samples", cfg.MinSamples)

	if err := plot.Scatter(cfg.PlotPath, assignments, cfg.TeamAllowList); err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ReplaceClusterAssignments(assignments); err != nil {
		return fmt.Errorf("store cluster assignments: %w", err)
	}

	report.PrintClusterSummary(os.Stdout, assignments)
	fmt.Fprintf(os.Stderr, "wrote plot to %s\n", cfg.PlotPath)
	return nil
}
