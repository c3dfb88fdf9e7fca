package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all goal planning routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Post("/plan", h.HandlePlan)
		r.Post("/progress", h.HandleProgress)
		r.Post("/optimize", h.HandleOptimize)
	})
}
