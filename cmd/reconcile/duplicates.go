package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/services"
)

func init() {
	rootCmd.AddCommand(duplicatesCmd)
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <export.csv>...",
	Short: "List phone numbers that voted on more than one device",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadExports(cmd.Context(), args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		dups := services.FindDuplicatePhones(ws.store.Ballots())
		if len(dups) == 0 {
			fmt.Fprintln(out, "no duplicate phone numbers")
			return nil
		}
		for _, d := range dups {
			fmt.Fprintf(out, "%s\t%s\n", d.Phone, strings.Join(d.BallotIDs, ","))
		}
		return nil
	},
}
