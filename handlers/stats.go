package handlers

import (
	"net/http"

	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// StatsHandler, raporlama endpoint'leri.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler, constructor.
func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard godoc
// GET /api/stats/dashboard
// Sonuç 30 saniye cache'lenir — dashboard polling'i DB'yi yormaz.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, stats)
}

// Revenue godoc
// GET /api/stats/revenue?from=2026-08-01&to=2026-08-31
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	revenue, err := h.statsService.Revenue(r.Context(), from, to)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, revenue)
}
