package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/esrrgltshibamb2000/esr-election/internal/core/domain"
	"github.com/esrrgltshibamb2000/esr-election/internal/core/ports"
)

type BallotHandler struct {
	store    ports.BallotService
	notifier ports.Notifier

	// mu makes the device check and the submission one step.
	mu sync.Mutex
}

func NewBallotHandler(store ports.BallotService, notifier ports.Notifier) *BallotHandler {
	return &BallotHandler{
		store:    store,
		notifier: notifier,
	}
}

type submitBallotRequest struct {
	Voter   domain.VoterIdentity `json:"voter"`
	Choices map[string]string    `json:"choices"`
	Note    string               `json:"note"`
}

type submitBallotResponse struct {
	Ballot       *domain.Ballot      `json:"ballot"`
	Notification domain.Notification `json:"notification"`
}

func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req submitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if device := h.store.Device(); device.HasVoted {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:            "already_voted",
			Message:          "this device has already voted",
			ExistingBallotID: device.Receipt,
		})
		return
	}

	ballot, err := h.store.Submit(r.Context(), ports.SubmitInput{
		Voter:   req.Voter,
		Choices: req.Choices,
		Note:    req.Note,
	})
	if err != nil {
		var verr *domain.ValidationError
		var averr *domain.AlreadyVotedError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:   "validation_failed",
				Message: domain.ErrValidationFailed.Error(),
				Reasons: verr.Reasons,
			})
		case errors.As(err, &averr):
			slog.Info("duplicate phone rejected", "existing_ballot_id", averr.BallotID)
			writeJSON(w, http.StatusConflict, errorResponse{
				Error:            "already_voted",
				Message:          domain.ErrAlreadyVoted.Error(),
				ExistingBallotID: averr.BallotID,
			})
		case errors.Is(err, domain.ErrPersistenceUnavailable):
			slog.Error("failed to store ballot", "error", err)
			writeError(w, http.StatusServiceUnavailable, "persistence_unavailable", "ballot could not be saved, try again")
		default:
			slog.Error("failed to submit ballot", "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	slog.Info("ballot admitted", "ballot_id", ballot.ID)
	writeJSON(w, http.StatusCreated, submitBallotResponse{
		Ballot:       ballot,
		Notification: h.notifier.Compose(*ballot),
	})
}

func (h *BallotHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Device())
}
