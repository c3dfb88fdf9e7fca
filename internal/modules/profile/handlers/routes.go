package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all profile routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Put("/", h.HandleUpdate)
		r.Post("/validate", h.HandleValidate)
		r.Post("/health-score", h.HandleHealthScore)
		r.Post("/segment", h.HandleSegment)
		r.Post("/compare", h.HandleCompare)
		r.Post("/analytics", h.HandleAnalytics)
		r.Post("/export", h.HandleExport)
	})
}
