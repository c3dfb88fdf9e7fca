// Package handlers provides HTTP handlers for market data operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/clients/marketdata"
)

// Handler handles market data HTTP requests
type Handler struct {
	market *marketdata.Client
	log    zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(market *marketdata.Client, log zerolog.Logger) *Handler {
	return &Handler{
		market: market,
		log:    log.With().Str("handler", "market").Logger(),
	}
}

// HandleOverview handles GET /api/market/overview
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.GetMarketOverview(r.Context()))
}

// HandleSectors handles GET /api/market/sectors
func (h *Handler) HandleSectors(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.GetSectorPerformance(r.Context()))
}

// HandleInsights handles GET /api/market/insights
func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.MarketInsights(r.Context()))
}

// HandleCrypto handles GET /api/market/crypto
func (h *Handler) HandleCrypto(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.GetCryptoPrices(r.Context()))
}

// HandleBonds handles GET /api/market/bonds
func (h *Handler) HandleBonds(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.GetBondYields(r.Context()))
}

// HandleIndicators handles GET /api/market/indicators
func (h *Handler) HandleIndicators(w http.ResponseWriter, r *http.Request) {
	h.writeData(w, h.market.GetEconomicIndicators(r.Context()))
}

// HandleStockPrice handles GET /api/market/stocks/{symbol}
func (h *Handler) HandleStockPrice(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	h.writeData(w, h.market.GetStockPrice(r.Context(), symbol))
}

// HandleStockHistory handles GET /api/market/stocks/{symbol}/history?days=30
func (h *Handler) HandleStockHistory(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			http.Error(w, "Invalid days parameter: must be 1-365", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	h.writeData(w, map[string]interface{}{
		"symbol": symbol,
		"days":   days,
		"points": h.market.GetHistoricalSeries(r.Context(), symbol, days),
	})
}

// writeData writes the standard data+metadata envelope.
func (h *Handler) writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
