package ports

import "github.com/esrrgltshibamb2000/esr-election/internal/core/domain"

type TallyService interface {
	Results() domain.TallyResult
}
