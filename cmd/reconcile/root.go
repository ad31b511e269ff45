package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/repository/memory"
	"github.com/esrrgltshibamb2000/esr-election/internal/config"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/services"
)

var electionPath string

var rootCmd = &cobra.Command{
	Use:          "reconcile",
	Short:        "Merge and inspect ballot exports from several devices",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&electionPath, "election", os.Getenv("ELECTION_CONFIG"), "Election config YAML (built-in when empty)")
}

// workspace is a throwaway in-memory store holding every merged export.
type workspace struct {
	cfg      domain.ElectionConfig
	store    ports.BallotService
	exchange ports.ExchangeService
	report   domain.ImportReport
}

func loadExports(ctx context.Context, paths []string) (*workspace, error) {
	cfg, err := config.LoadElection(electionPath)
	if err != nil {
		return nil, err
	}

	store, err := services.NewBallotService(ctx, memory.NewBallotRepository(), cfg)
	if err != nil {
		return nil, err
	}
	ws := &workspace{
		cfg:      cfg,
		store:    store,
		exchange: services.NewExchangeService(store, cfg),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read export: %w", err)
		}
		report, err := ws.exchange.Import(ctx, string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", path, err)
		}
		ws.report.Merged += report.Merged
		ws.report.Skipped += report.Skipped
		ws.report.Malformed += report.Malformed
	}

	return ws, nil
}
