// Package handlers provides HTTP handlers for portfolio analysis.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	analyzer *portfolio.Analyzer
	log      zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(analyzer *portfolio.Analyzer, log zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		log:      log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleAnalyze handles POST /api/portfolio/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Portfolio *domain.Portfolio   `json:"portfolio"`
		Profile   *domain.UserProfile `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Portfolio == nil || req.Profile == nil {
		http.Error(w, "Invalid request body: expected portfolio and profile", http.StatusBadRequest)
		return
	}

	analysis := h.analyzer.Analyze(r.Context(), req.Portfolio, req.Profile)

	response := map[string]interface{}{
		"data": analysis,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
