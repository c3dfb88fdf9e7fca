package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recommendations", func(r chi.Router) {
		r.Post("/investments", h.HandleInvestments)
		r.Post("/insurance", h.HandleInsurance)
		r.Post("/comprehensive", h.HandleComprehensive)
		r.Post("/segments", h.HandleSegments)
		r.Post("/similar", h.HandleSimilar)
	})
}
