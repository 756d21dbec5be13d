package transport

import (
	"net/http"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatsResponse is the aggregated dashboard payload plus the last fetch
// error, if any
type StatsResponse struct {
	Stats service.Stats `json:"stats"`
	Error string        `json:"error,omitempty"`
}

// AnalyticsHandler handles HTTP requests for the sales dashboard
type AnalyticsHandler struct {
	analytics service.AnalyticsService
	logger    *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// RegisterRoutes registers the analytics routes; the dashboard is admin-only
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router, sessionMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Use(adminMiddleware)
		r.Get("/stats", h.Stats)
	})
}

// Stats aggregates orders for the requested date range. Bounds arrive as
// start_date / end_date query params in YYYY-MM-DD; both must be present for
// a custom range, otherwise the current month is used.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var startDate, endDate *time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
		startDate = &parsed
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		parsed, err := time.Parse("2006-01-02", e)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid end_date")
			return
		}
		endDate = &parsed
	}

	h.analytics.FetchStats(r.Context(), startDate, endDate)

	middleware.RespondWithJSON(w, http.StatusOK, StatsResponse{
		Stats: h.analytics.Stats(),
		Error: h.analytics.Error(),
	})
}
