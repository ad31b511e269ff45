package http

import (
	"net/http"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

type ResultsHandler struct {
	tally ports.TallyService
}

func NewResultsHandler(tally ports.TallyService) *ResultsHandler {
	return &ResultsHandler{
		tally: tally,
	}
}

func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tally.Results())
}
