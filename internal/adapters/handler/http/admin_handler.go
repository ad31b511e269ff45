package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

const (
	exportFilename = "esr_votes_export.csv"
	maxImportBytes = 10 << 20
)

// AdminHandler serves the PIN-gated maintenance operations.
type AdminHandler struct {
	store    ports.BallotService
	exchange ports.ExchangeService
}

func NewAdminHandler(store ports.BallotService, exchange ports.ExchangeService) *AdminHandler {
	return &AdminHandler{
		store:    store,
		exchange: exchange,
	}
}

func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.exchange.Export()
	if err != nil {
		if errors.Is(err, domain.ErrNothingToExport) {
			writeError(w, http.StatusNotFound, "nothing_to_export", err.Error())
			return
		}
		slog.Error("failed to export ballots", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text)
}

func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "import_too_large", "import file is larger than 10 MiB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to read import file")
		return
	}

	report, err := h.exchange.Import(r.Context(), string(body))
	if err != nil {
		h.storageError(w, "import", err)
		return
	}

	slog.Info("ballots imported", "merged", report.Merged, "skipped", report.Skipped, "malformed", report.Malformed)
	writeJSON(w, http.StatusOK, report)
}

func (h *AdminHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		h.storageError(w, "clear", err)
		return
	}
	slog.Info("all ballots cleared")
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *AdminHandler) ResetVoted(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetVotedFlag(r.Context()); err != nil {
		h.storageError(w, "reset voted flag", err)
		return
	}
	slog.Info("device voted flag reset")
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *AdminHandler) SeedSamples(w http.ResponseWriter, r *http.Request) {
	report, err := h.exchange.SeedSamples(r.Context())
	if err != nil {
		h.storageError(w, "seed samples", err)
		return
	}
	slog.Info("sample ballots added", "merged", report.Merged)
	writeJSON(w, http.StatusOK, report)
}

func (h *AdminHandler) storageError(w http.ResponseWriter, op string, err error) {
	slog.Error("admin operation failed", "op", op, "error", err)
	if errors.Is(err, domain.ErrPersistenceUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "persistence_unavailable", "ballot storage unavailable, nothing was changed")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}
