package stakehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	stakeservice "github.com/apvc-club/stake-reservations/app/modules/stake/application"
	stakedb "github.com/apvc-club/stake-reservations/app/modules/stake/infrastructure/repositories"
	tournamentservice "github.com/apvc-club/stake-reservations/app/modules/tournament/application"
	tournamentdb "github.com/apvc-club/stake-reservations/app/modules/tournament/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StakeHandlers handles HTTP requests for stake operations.
type StakeHandlers struct {
	service     stakeservice.Service
	tournaments tournamentservice.Service
}

// NewStakeHandlers creates a new StakeHandlers instance.
func NewStakeHandlers(service stakeservice.Service, tournaments tournamentservice.Service) *StakeHandlers {
	return &StakeHandlers{service: service, tournaments: tournaments}
}

type reserveRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// ListByBirdType returns the stake grid for one bird type, ordered by number.
func (h *StakeHandlers) ListByBirdType(w http.ResponseWriter, r *http.Request) {
	birdTypeID, err := uuid.Parse(chi.URLParam(r, "birdTypeID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid bird type ID")
		return
	}

	stakes, err := h.service.ListByBirdType(r.Context(), birdTypeID)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to list stakes")
		return
	}
	httputil.Respond(w, http.StatusOK, stakes)
}

// Reserve attempts to book a stake for the caller. A stake lost to a
// concurrent caller comes back 409 with code "conflict" so clients can
// distinguish it from their own bad input.
func (h *StakeHandlers) Reserve(w http.ResponseWriter, r *http.Request) {
	stakeID, err := uuid.Parse(chi.URLParam(r, "stakeID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid stake ID")
		return
	}

	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_body", "failed to decode request body")
		return
	}

	result, err := h.service.Reserve(r.Context(), stakeID, req.CustomerName, req.CustomerPhone)
	if err != nil {
		var validationErr *stakeservice.ValidationError
		switch {
		case errors.As(err, &validationErr):
			httputil.RespondError(w, http.StatusBadRequest, "validation", validationErr.Error())
		case errors.Is(err, stakedb.ErrStakeNotAvailable):
			httputil.RespondError(w, http.StatusConflict, "conflict", "stake is no longer available")
		case errors.Is(err, stakedb.ErrStakeNotFound):
			httputil.RespondError(w, http.StatusNotFound, "not_found", "stake not found")
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to reserve stake")
		}
		return
	}

	httputil.Respond(w, http.StatusOK, result)
}

// ConfirmPayment marks a pending stake's payment as received.
func (h *StakeHandlers) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	stakeID, err := uuid.Parse(chi.URLParam(r, "stakeID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid stake ID")
		return
	}

	stake, err := h.service.ConfirmPayment(r.Context(), stakeID)
	if err != nil {
		h.respondAdminError(w, err, "failed to confirm payment")
		return
	}
	httputil.Respond(w, http.StatusOK, stake)
}

// CancelReservation returns a pending or confirmed stake to the pool.
func (h *StakeHandlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	stakeID, err := uuid.Parse(chi.URLParam(r, "stakeID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid stake ID")
		return
	}

	stake, err := h.service.CancelReservation(r.Context(), stakeID)
	if err != nil {
		h.respondAdminError(w, err, "failed to cancel reservation")
		return
	}
	httputil.Respond(w, http.StatusOK, stake)
}

func (h *StakeHandlers) respondAdminError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, stakedb.ErrStakeNotFound):
		httputil.RespondError(w, http.StatusNotFound, "not_found", "stake not found")
	case errors.Is(err, stakedb.ErrInvalidTransition):
		httputil.RespondError(w, http.StatusConflict, "conflict", "stake is not in a state that allows this action")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal", fallback)
	}
}

// Export streams an xlsx workbook of the tournament's stakes, one sheet per
// bird type. Without an explicit tournament_id the active tournament is used.
func (h *StakeHandlers) Export(w http.ResponseWriter, r *http.Request) {
	var tournamentID uuid.UUID
	if raw := r.URL.Query().Get("tournament_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid tournament ID")
			return
		}
		tournamentID = id
	} else {
		active, err := h.tournaments.GetActive(r.Context())
		if err != nil {
			if errors.Is(err, tournamentdb.ErrNoActiveTournament) {
				httputil.RespondError(w, http.StatusNotFound, "not_found", "no active tournament")
				return
			}
			httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to resolve active tournament")
			return
		}
		tournamentID = active.ID
	}

	workbook, err := h.service.ExportWorkbook(r.Context(), tournamentID)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to build export")
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("estacas-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := workbook.Write(w); err != nil {
		// Headers already sent; nothing sensible left to do but log upstream.
		return
	}
}
