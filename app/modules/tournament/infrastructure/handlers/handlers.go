package tournamenthandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	tournamentservice "github.com/apvc-club/stake-reservations/app/modules/tournament/application"
	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TournamentHandlers handles HTTP requests for tournament operations.
type TournamentHandlers struct {
	service tournamentservice.Service
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(service tournamentservice.Service) *TournamentHandlers {
	return &TournamentHandlers{service: service}
}

// GetActive returns the tournament currently open for reservations.
func (h *TournamentHandlers) GetActive(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.service.GetActive(r.Context())
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNoActiveTournament) {
			httputil.RespondError(w, http.StatusNotFound, "not_found", "no active tournament")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to load active tournament")
		return
	}
	httputil.Respond(w, http.StatusOK, tournament)
}

// List returns every tournament, newest first.
func (h *TournamentHandlers) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.service.List(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to list tournaments")
		return
	}
	httputil.Respond(w, http.StatusOK, tournaments)
}

// Create provisions a tournament with its bird types and stakes.
func (h *TournamentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input tournamentservice.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_body", "failed to decode request body")
		return
	}

	tournament, err := h.service.Create(r.Context(), input)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	httputil.Respond(w, http.StatusCreated, tournament)
}

// Activate makes the given tournament the single active one, deactivating any
// other.
func (h *TournamentHandlers) Activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tournamentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid tournament ID")
		return
	}

	if err := h.service.Activate(r.Context(), id); err != nil {
		if errors.Is(err, tournamentdb.ErrTournamentNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "not_found", "tournament not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to activate tournament")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deactivate clears the tournament's active flag.
func (h *TournamentHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tournamentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid tournament ID")
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, tournamentdb.ErrTournamentNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "not_found", "tournament not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to deactivate tournament")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
