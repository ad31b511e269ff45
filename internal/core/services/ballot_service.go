package services

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ids"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/phone"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

// ballotService is the device's ballot store. Every mutation is saved
// through the repository before it becomes visible in memory, and the
// whole check-then-insert of Submit runs under the write lock.
type ballotService struct {
	repo  ports.BallotRepository
	cfg   domain.ElectionConfig
	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	order   []string
	ballots map[string]domain.Ballot
	byPhone map[string]string
	device  domain.DeviceState
}

// NewBallotService loads the saved state and rebuilds the phone index from it.
func NewBallotService(ctx context.Context, repo ports.BallotRepository, cfg domain.ElectionConfig) (ports.BallotService, error) {
	return newBallotService(ctx, repo, cfg, time.Now, ids.New)
}

func newBallotService(ctx context.Context, repo ports.BallotRepository, cfg domain.ElectionConfig, now func() time.Time, newID func() string) (*ballotService, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load ballots: %w", domain.ErrPersistenceUnavailable, err)
	}

	s := &ballotService{
		repo:  repo,
		cfg:   cfg,
		now:   now,
		newID: newID,
	}
	if state == nil {
		state = &domain.StoreState{}
	}
	s.apply(state.Ballots, state.Device)
	return s, nil
}

func (s *ballotService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Ballot, error) {
	if reasons := validateSubmission(s.cfg, input); len(reasons) > 0 {
		return nil, &domain.ValidationError{Reasons: reasons}
	}

	key := phone.Normalize(input.Voter.Phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existingID, ok := s.byPhone[key]; ok {
		s.markDeviceVotedLocked(ctx, existingID)
		return nil, &domain.AlreadyVotedError{BallotID: existingID}
	}

	ballot := domain.Ballot{
		ID:        s.newID(),
		Timestamp: domain.FormatTimestamp(s.now()),
		Voter: domain.VoterIdentity{
			Name:  strings.TrimSpace(input.Voter.Name),
			Phone: strings.TrimSpace(input.Voter.Phone),
		},
		Choices: make(map[string]string, len(s.cfg.Races)),
		Note:    strings.TrimSpace(input.Note),
	}
	for _, race := range s.cfg.Races {
		ballot.Choices[race.ID] = input.Choices[race.ID]
	}

	device := s.device
	if !device.HasVoted {
		device = domain.DeviceState{HasVoted: true, Receipt: ballot.ID}
	}

	next := append(s.snapshotLocked(), ballot)
	if err := s.save(ctx, next, device); err != nil {
		return nil, err
	}

	s.insertLocked(ballot)
	s.device = device

	out := copyBallot(ballot)
	return &out, nil
}

// markDeviceVotedLocked records that the device's voter is already counted.
// A save failure only costs the flag, so it is logged and not returned.
func (s *ballotService) markDeviceVotedLocked(ctx context.Context, receipt string) {
	if s.device.HasVoted {
		return
	}
	device := domain.DeviceState{HasVoted: true, Receipt: receipt}
	if err := s.save(ctx, s.snapshotLocked(), device); err != nil {
		slog.Warn("failed to persist has-voted flag", "error", err, "receipt", receipt)
		return
	}
	s.device = device
}

func (s *ballotService) HasVoted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.device.HasVoted
}

func (s *ballotService) Device() domain.DeviceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.device
}

// Ballots returns a copy of the store in natural insertion order.
func (s *ballotService) Ballots() []domain.Ballot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *ballotService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// MergeBallots adds ballots whose id is not already stored. The phone
// check is not applied: imported ballots were deduplicated on the device
// that recorded them. Their phones still enter the index, so a later
// local submission with the same number is refused.
func (s *ballotService) MergeBallots(ctx context.Context, incoming []domain.Ballot) (domain.ImportReport, error) {
	var report domain.ImportReport

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshotLocked()
	seen := make(map[string]struct{}, len(incoming))
	var added []domain.Ballot

	for _, b := range incoming {
		if b.ID == "" {
			report.Malformed++
			continue
		}
		if _, ok := s.ballots[b.ID]; ok {
			report.Skipped++
			continue
		}
		if _, ok := seen[b.ID]; ok {
			report.Skipped++
			continue
		}
		seen[b.ID] = struct{}{}
		b = copyBallot(b)
		added = append(added, b)
		next = append(next, b)
	}

	if len(added) == 0 {
		return report, nil
	}

	if err := s.save(ctx, next, s.device); err != nil {
		return domain.ImportReport{}, err
	}
	for _, b := range added {
		s.insertLocked(b)
	}
	report.Merged = len(added)
	return report, nil
}

// ClearAll empties the store and the phone index. The device flag is kept.
func (s *ballotService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, nil, s.device); err != nil {
		return err
	}
	s.apply(nil, s.device)
	return nil
}

// ResetVotedFlag clears the device flag and receipt. Stored ballots stay.
func (s *ballotService) ResetVotedFlag(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, s.snapshotLocked(), domain.DeviceState{}); err != nil {
		return err
	}
	s.device = domain.DeviceState{}
	return nil
}

func (s *ballotService) save(ctx context.Context, ballots []domain.Ballot, device domain.DeviceState) error {
	err := s.repo.Save(ctx, &domain.StoreState{Ballots: ballots, Device: device})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistenceUnavailable, err)
	}
	return nil
}

// apply replaces the in-memory state and rebuilds the phone index. When
// two ballots share a phone the earlier one owns the index entry.
func (s *ballotService) apply(ballots []domain.Ballot, device domain.DeviceState) {
	s.order = make([]string, 0, len(ballots))
	s.ballots = make(map[string]domain.Ballot, len(ballots))
	s.byPhone = make(map[string]string, len(ballots))
	s.device = device

	for _, b := range ballots {
		if b.ID == "" {
			continue
		}
		if _, dup := s.ballots[b.ID]; dup {
			continue
		}
		s.insertLocked(copyBallot(b))
	}
}

func (s *ballotService) insertLocked(b domain.Ballot) {
	s.order = append(s.order, b.ID)
	s.ballots[b.ID] = b
	key := phone.Normalize(b.Voter.Phone)
	if key == "" {
		return
	}
	if _, taken := s.byPhone[key]; !taken {
		s.byPhone[key] = b.ID
	}
}

func (s *ballotService) snapshotLocked() []domain.Ballot {
	out := make([]domain.Ballot, 0, len(s.order)+1)
	for _, id := range s.order {
		out = append(out, copyBallot(s.ballots[id]))
	}
	return out
}

func copyBallot(b domain.Ballot) domain.Ballot {
	b.Choices = maps.Clone(b.Choices)
	return b
}
