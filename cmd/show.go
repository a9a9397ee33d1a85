package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/model"
	"github.com/refwatch/refmetrics/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <referee>",
	Short: "Show one referee's per-team stats and cluster labels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStorage()
		if err != nil {
			return err
		}
		defer db.Close()

		name, err := db.GetRefereeByPrefix(args[0])
		if err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("no retained referee matches %q", args[0])
		}

		stats, err := db.GetRefereeTeamStats(name)
		if err != nil {
			return err
		}
		clusters, err := db.GetClusterAssignments(name)
		if err != nil {
			return err
		}

		fmt.Printf("Referee: %s\n\n", name)
		report.PrintStatsTable(os.Stdout, stats, name)

		if len(clusters) > 0 {
			fmt.Println("\nCluster labels:")
			for _, s := range stats {
				label, ok := clusters[s.Team]
				if !ok {
					continue
				}
				tag := fmt.Sprintf("%d", label)
				if label == model.NoiseCluster {
					tag = "noise"
				}
				fmt.Printf("  %-18s %s\n", s.Team, tag)
			}
		}
		return nil
	},
}
