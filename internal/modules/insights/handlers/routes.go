package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all insights routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/insights", func(r chi.Router) {
		r.Post("/quick", h.HandleQuickInsights)
		r.Post("/risk", h.HandleRiskAssessment)
	})
}
