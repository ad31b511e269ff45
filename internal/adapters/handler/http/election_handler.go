package http

import (
	"net/http"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
)

type ElectionHandler struct {
	cfg domain.ElectionConfig
}

func NewElectionHandler(cfg domain.ElectionConfig) *ElectionHandler {
	return &ElectionHandler{
		cfg: cfg,
	}
}

// GetElection returns the races and candidates. The admin PIN and phone are never serialized.
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg)
}
