package cmd

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/model"
	"github.com/refwatch/refmetrics/internal/pipeline"
	"github.com/refwatch/refmetrics/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <referee>",
	Short: "Chronological per-match discipline trend for a referee",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openStorage()
	if err != nil {
		return err
	}
	defer db.Close()

	// Prefer the retained-referee prefix lookup; fall back to canonicalizing
	// the argument so trend works before prepare has run.
	name, err := db.GetRefereeByPrefix(args[0])
	if err != nil {
		return err
	}
	if name == "" {
		name = pipeline.CanonicalReferee(args[0])
	}

	all, err := db.AllMatches()
	if err != nil {
		return fmt.Errorf("query matches: %w", err)
	}
	var matches []model.MatchRecord
	for _, m := range all {
		if pipeline.CanonicalReferee(m.Referee) == name {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		fmt.Printf("no stored matches for %q\n", name)
		return nil
	}

	fmt.Printf("Referee: %s (%d matches)\n\n", name, len(matches))
	report.PrintTrendTable(os.Stdout, matches)

	fouls := make([]float64, len(matches))
	for i, m := range matches {
		fouls[i] = float64(m.HomeFouls + m.AwayFouls)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(fouls,
		asciigraph.Height(8),
		asciigraph.Caption("total fouls per match, chronological")))
	return nil
}
