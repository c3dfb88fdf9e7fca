package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market data routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/overview", h.HandleOverview)
		r.Get("/sectors", h.HandleSectors)
		r.Get("/insights", h.HandleInsights)
		r.Get("/crypto", h.HandleCrypto)
		r.Get("/bonds", h.HandleBonds)
		r.Get("/indicators", h.HandleIndicators)
		r.Get("/stocks/{symbol}", h.HandleStockPrice)
		r.Get("/stocks/{symbol}/history", h.HandleStockHistory)
	})
}
