package ports

import (
	"context"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

// BallotRepository is the persistence collaborator. Load returns an empty
// state when nothing has been saved yet.
type BallotRepository interface {
	Load(ctx context.Context) (*domain.StoreState, error)
	Save(ctx context.Context, state *domain.StoreState) error
}

type SubmitInput struct {
	Voter   domain.VoterIdentity
	Choices map[string]string
	Note    string
}

type BallotService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Ballot, error)
	HasVoted() bool
	Device() domain.DeviceState
	Ballots() []domain.Ballot
	Count() int
	MergeBallots(ctx context.Context, ballots []domain.Ballot) (domain.ImportReport, error)
	ClearAll(ctx context.Context) error
	ResetVotedFlag(ctx context.Context) error
}
