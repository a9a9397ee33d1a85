package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refwatch/refmetrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the prepared referees with their aggregate discipline totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStorage()
		if err != nil {
			return err
		}
		defer db.Close()

		referees, err := db.ListReferees()
		if err != nil {
			return err
		}
		if len(referees) == 0 {
			fmt.Fprintln(os.Stderr, "no referees stored; run 'refmetrics prepare' first")
			return nil
		}
		stats, err := db.AllRefereeTeamStats()
		if err != nil {
			return err
		}
		report.PrintRefereeTable(os.Stdout, referees, stats)
		return nil
	},
}
