package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var mergeOutput string

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the consolidated export here instead of stdout")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <export.csv>...",
	Short: "Write one export holding every distinct ballot",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadExports(cmd.Context(), args)
		if err != nil {
			return err
		}

		text, err := ws.exchange.Export()
		if err != nil {
			return err
		}

		if mergeOutput == "" {
			if _, err := io.WriteString(cmd.OutOrStdout(), text); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
		} else if err := writeFile(mergeOutput, text); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "merged %d ballots, skipped %d duplicates, %d malformed rows\n",
			ws.report.Merged, ws.report.Skipped, ws.report.Malformed)
		return nil
	},
}

func writeFile(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if _, err := io.WriteString(f, text); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
