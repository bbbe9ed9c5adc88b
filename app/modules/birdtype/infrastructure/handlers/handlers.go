package birdtypehandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	birdtypeservice "github.com/apvc-club/stake-reservations/app/modules/birdtype/application"
	birdtypedb "github.com/apvc-club/stake-reservations/app/modules/birdtype/infrastructure/repositories"
	"github.com/apvc-club/stake-reservations/internal/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BirdTypeHandlers handles HTTP requests for bird-type categories.
type BirdTypeHandlers struct {
	service birdtypeservice.Service
}

// NewBirdTypeHandlers creates a new BirdTypeHandlers instance.
func NewBirdTypeHandlers(service birdtypeservice.Service) *BirdTypeHandlers {
	return &BirdTypeHandlers{service: service}
}

// ListByTournament returns the tournament's categories with their stake
// counts.
func (h *BirdTypeHandlers) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := uuid.Parse(chi.URLParam(r, "tournamentID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid tournament ID")
		return
	}

	birdTypes, err := h.service.ListWithCounts(r.Context(), tournamentID)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to list bird types")
		return
	}
	httputil.Respond(w, http.StatusOK, birdTypes)
}

// Get returns one bird type with its tournament loaded.
func (h *BirdTypeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "birdTypeID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_id", "invalid bird type ID")
		return
	}

	birdType, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, birdtypedb.ErrBirdTypeNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "not_found", "bird type not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to load bird type")
		return
	}
	httputil.Respond(w, http.StatusOK, birdType)
}

// Create adds a category to an existing tournament and seeds its stakes.
func (h *BirdTypeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var input birdtypeservice.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid_body", "failed to decode request body")
		return
	}

	birdType, err := h.service.Create(r.Context(), input)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}
	httputil.Respond(w, http.StatusCreated, birdType)
}
