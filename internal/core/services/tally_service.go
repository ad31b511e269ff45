package services

import (
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

type tallyService struct {
	store ports.BallotService
	cfg   domain.ElectionConfig
}

func NewTallyService(store ports.BallotService, cfg domain.ElectionConfig) ports.TallyService {
	return &tallyService{
		store: store,
		cfg:   cfg,
	}
}

// Results tallies a consistent snapshot of the store.
func (s *tallyService) Results() domain.TallyResult {
	return Tally(s.store.Ballots(), s.cfg)
}

// Tally counts, per race, each ballot whose choice names a known
// candidate. Empty and unknown choices count toward neither the total nor
// any candidate. The result follows the race and candidate order of cfg.
func Tally(ballots []domain.Ballot, cfg domain.ElectionConfig) domain.TallyResult {
	counts := make(map[string]map[string]int, len(cfg.Races))
	totals := make(map[string]int, len(cfg.Races))
	for _, race := range cfg.Races {
		counts[race.ID] = make(map[string]int, len(race.Candidates))
	}

	for _, b := range ballots {
		for _, race := range cfg.Races {
			sel := b.Choices[race.ID]
			if sel == "" || !race.HasCandidate(sel) {
				continue
			}
			totals[race.ID]++
			counts[race.ID][sel]++
		}
	}

	result := domain.TallyResult{Races: make([]domain.RaceTally, 0, len(cfg.Races))}
	for _, race := range cfg.Races {
		total := totals[race.ID]
		rt := domain.RaceTally{
			RaceID:     race.ID,
			Title:      race.Title,
			Total:      total,
			Candidates: make([]domain.CandidateTally, 0, len(race.Candidates)),
		}
		for _, c := range race.Candidates {
			n := counts[race.ID][c.ID]
			rt.Candidates = append(rt.Candidates, domain.CandidateTally{
				CandidateID: c.ID,
				Name:        c.Name,
				Count:       n,
				Percentage:  domain.Percentage(n, total),
			})
		}
		result.Races = append(result.Races, rt)
	}
	return result
}
