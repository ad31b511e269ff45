package ports

import (
	"context"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

type ExchangeService interface {
	Export() (string, error)
	Import(ctx context.Context, text string) (domain.ImportReport, error)
	SeedSamples(ctx context.Context) (domain.ImportReport, error)
}

// Notifier formats the hand-off message sent after a successful submission.
type Notifier interface {
	Compose(ballot domain.Ballot) domain.Notification
}
