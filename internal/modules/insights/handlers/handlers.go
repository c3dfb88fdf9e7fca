// Package handlers provides HTTP handlers for insight operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/insights"
)

// Handler handles insights HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new insights handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "insights").Logger(),
	}
}

// HandleQuickInsights handles POST /api/insights/quick
func (h *Handler) HandleQuickInsights(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"insights": insights.QuickInsights(userProfile),
	})
}

// HandleRiskAssessment handles POST /api/insights/risk
func (h *Handler) HandleRiskAssessment(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, insights.AssessRisk(userProfile))
}

func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (*domain.UserProfile, bool) {
	var userProfile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&userProfile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &userProfile, true
}

// writeData writes the standard data+metadata envelope.
func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

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
