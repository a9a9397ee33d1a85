package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [raw.csv]",
	Short: "Run the full pipeline: clean, prepare, cluster",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runClean(rawPathArg(args)); err != nil {
			return err
		}
		res, err := runPrepare()
		if err != nil {
			return err
		}
		return clusterStats(res.Scaled)
	},
}
