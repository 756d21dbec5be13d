package transport

import (
	"net/http"

	"github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/session"

	"github.com/go-chi/chi/v5"
)

// PageHandler serves the logical page routes. The real UI is rendered
// elsewhere; these endpoints exist so the route guard's navigation rules
// (login redirects, admin-only sections) apply to the page surface.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// RegisterRoutes registers the guarded page routes
func (h *PageHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/", h.page("home"))
		r.Get("/login", h.page("login"))
		r.Get("/products", h.page("products"))
		r.Get("/products/*", h.page("products"))
		r.Get("/dashboard", h.page("dashboard"))
		r.Get("/dashboard/*", h.page("dashboard"))
	})
}

func (h *PageHandler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"page": name}
		if sess, ok := session.FromContext(r.Context()); ok {
			payload["user"] = sess
		}
		middleware.RespondWithJSON(w, http.StatusOK, payload)
	}
}
