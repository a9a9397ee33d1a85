package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the stored match dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStorage()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.MatchCount()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("no matches stored; run 'refmetrics clean' first")
			return nil
		}

		first, last, err := db.DateRange()
		if err != nil {
			return err
		}
		teams, err := db.TeamAppearances()
		if err != nil {
			return err
		}
		referees, err := db.ListReferees()
		if err != nil {
			return err
		}

		fmt.Printf("Matches:   %d\n", n)
		fmt.Printf("Dates:     %s .. %s\n", first, last)
		fmt.Printf("Teams:     %d\n", len(teams))
		fmt.Printf("Referees:  %d retained\n", len(referees))

		fmt.Println("\nMost seen teams:")
		for i, t := range teams {
			if i >= 10 {
				break
			}
			fmt.Printf("  %-22s %d\n", t.Team, t.Matches)
		}
		return nil
	},
}
