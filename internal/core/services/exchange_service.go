package services

import (
	"context"
	"time"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/csvcodec"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ids"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

type exchangeService struct {
	store ports.BallotService
	cfg   domain.ElectionConfig
	now   func() time.Time
}

func NewExchangeService(store ports.BallotService, cfg domain.ElectionConfig) ports.ExchangeService {
	return &exchangeService{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

func (s *exchangeService) Export() (string, error) {
	ballots := s.store.Ballots()
	if len(ballots) == 0 {
		return "", domain.ErrNothingToExport
	}
	return csvcodec.Encode(ballots, s.cfg), nil
}

// Import merges an exported file into the store. Rows without an id are
// counted as malformed and skipped; the rest of the file still merges.
func (s *exchangeService) Import(ctx context.Context, text string) (domain.ImportReport, error) {
	rows := csvcodec.Decode(text)

	malformed := 0
	ballots := make([]domain.Ballot, 0, len(rows))
	for _, row := range rows {
		if row[csvcodec.ColID] == "" {
			malformed++
			continue
		}
		ballots = append(ballots, row.Ballot(s.cfg))
	}

	report, err := s.store.MergeBallots(ctx, ballots)
	if err != nil {
		return domain.ImportReport{}, err
	}
	report.Malformed += malformed
	return report, nil
}

type sampleVoter struct {
	name    string
	phone   string
	choices map[string]string
}

var sampleVoters = []sampleVoter{
	{"Test One", "+243970000001", map[string]string{"dg-construction": "ndona-joel", "rep-etude-conception": "achema-tonny"}},
	{"Test Two", "+243970000002", map[string]string{"dg-construction": "toussaint-enock", "rep-etude-conception": "bawota-bibiane"}},
	{"Test Three", "+243970000003", map[string]string{"dg-construction": "ndona-joel", "rep-etude-conception": "achema-tonny"}},
}

// SeedSamples merges three test ballots for checking the results screen.
// They bypass the phone check and leave the device flag alone.
func (s *exchangeService) SeedSamples(ctx context.Context) (domain.ImportReport, error) {
	ts := domain.FormatTimestamp(s.now())
	ballots := make([]domain.Ballot, 0, len(sampleVoters))
	for _, v := range sampleVoters {
		ballots = append(ballots, domain.Ballot{
			ID:        ids.New(),
			Timestamp: ts,
			Voter:     domain.VoterIdentity{Name: v.name, Phone: v.phone},
			Choices:   v.choices,
			Note:      "(test)",
		})
	}
	return s.store.MergeBallots(ctx, ballots)
}
