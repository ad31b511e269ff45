package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/services"
)

func init() {
	rootCmd.AddCommand(tallyCmd)
}

var tallyCmd = &cobra.Command{
	Use:   "tally <export.csv>...",
	Short: "Count the merged ballots per race",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadExports(cmd.Context(), args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n%s\n", ws.cfg.Org, ws.cfg.Dept)
		fmt.Fprintf(out, "%d ballots (%d duplicates skipped, %d malformed rows)\n",
			ws.store.Count(), ws.report.Skipped, ws.report.Malformed)

		result := services.Tally(ws.store.Ballots(), ws.cfg)
		for _, race := range result.Races {
			fmt.Fprintf(out, "\n%s (%d)\n", race.Title, race.Total)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range race.Candidates {
				fmt.Fprintf(tw, "  %s\t%d\t%d%%\n", c.Name, c.Count, c.Percentage)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}
