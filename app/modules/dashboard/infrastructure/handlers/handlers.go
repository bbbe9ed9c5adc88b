package dashboardhandlers

import (
	"net/http"

	dashboardservice "github.com/apvc-club/stake-reservations/app/modules/dashboard/application"
	"github.com/apvc-club/stake-reservations/internal/httputil"
)

// DashboardHandlers handles HTTP requests for the admin dashboard.
type DashboardHandlers struct {
	service dashboardservice.Service
}

// NewDashboardHandlers creates a new DashboardHandlers instance.
func NewDashboardHandlers(service dashboardservice.Service) *DashboardHandlers {
	return &DashboardHandlers{service: service}
}

// Stats returns the active tournament's aggregate figures as JSON.
func (h *DashboardHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to load dashboard stats")
		return
	}
	httputil.Respond(w, http.StatusOK, stats)
}

// StatusChart returns the stake status distribution as a PNG bar chart.
func (h *DashboardHandlers) StatusChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.StatusChart(r.Context())
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "internal", "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
