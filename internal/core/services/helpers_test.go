package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/esrrgltshibamb2000/esr-election/internal/adapters/repository/memory"
	"github.com/esrrgltshibamb2000/esr-election/internal/config"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

var errDiskGone = errors.New("disk gone")

// flakyRepository wraps the memory repository and fails saves on demand.
type flakyRepository struct {
	*memory.BallotRepository
	mu       sync.Mutex
	failSave bool
	failLoad bool
}

func (r *flakyRepository) Load(ctx context.Context) (*domain.StoreState, error) {
	if r.failLoad {
		return nil, errDiskGone
	}
	return r.BallotRepository.Load(ctx)
}

func (r *flakyRepository) Save(ctx context.Context, state *domain.StoreState) error {
	r.mu.Lock()
	fail := r.failSave
	r.mu.Unlock()
	if fail {
		return errDiskGone
	}
	return r.BallotRepository.Save(ctx, state)
}

func (r *flakyRepository) setFailSave(v bool) {
	r.mu.Lock()
	r.failSave = v
	r.mu.Unlock()
}

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 9, 15, 0, 0, time.UTC)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func newTestStore(t *testing.T, repo ports.BallotRepository) *ballotService {
	t.Helper()
	s, err := newBallotService(context.Background(), repo, config.Default(), fixedClock, sequentialIDs())
	require.NoError(t, err)
	return s
}

func validInput(name, ph string) ports.SubmitInput {
	return ports.SubmitInput{
		Voter: domain.VoterIdentity{Name: name, Phone: ph},
		Choices: map[string]string{
			"dg-construction":      "ndona-joel",
			"rep-etude-conception": "achema-tonny",
		},
	}
}
