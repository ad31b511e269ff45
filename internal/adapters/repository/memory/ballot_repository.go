// Package memory keeps the ballot state in process memory. It backs the
// "memory" store driver, the reconciliation CLI and the tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

var _ ports.BallotRepository = (*BallotRepository)(nil)

type BallotRepository struct {
	mu    sync.Mutex
	state domain.StoreState
	saves int
}

func NewBallotRepository() *BallotRepository {
	return &BallotRepository{}
}

// NewBallotRepositoryWith starts from a pre-saved state.
func NewBallotRepositoryWith(state domain.StoreState) *BallotRepository {
	return &BallotRepository{state: cloneState(state)}
}

func (r *BallotRepository) Load(ctx context.Context) (*domain.StoreState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := cloneState(r.state)
	return &st, nil
}

func (r *BallotRepository) Save(ctx context.Context, state *domain.StoreState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = cloneState(*state)
	r.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (r *BallotRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func cloneState(s domain.StoreState) domain.StoreState {
	out := domain.StoreState{Device: s.Device}
	if s.Ballots != nil {
		out.Ballots = make([]domain.Ballot, len(s.Ballots))
		for i, b := range s.Ballots {
			b.Choices = maps.Clone(b.Choices)
			out.Ballots[i] = b
		}
	}
	return out
}
