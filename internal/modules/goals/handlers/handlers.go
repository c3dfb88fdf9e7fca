// Package handlers provides HTTP handlers for goal planning operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/goals"
)

// Handler handles goal planning HTTP requests
type Handler struct {
	planner *goals.Planner
	log     zerolog.Logger
}

// NewHandler creates a new goals handler
func NewHandler(planner *goals.Planner, log zerolog.Logger) *Handler {
	return &Handler{
		planner: planner,
		log:     log.With().Str("handler", "goals").Logger(),
	}
}

// HandlePlan handles POST /api/goals/plan
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goal    *domain.Goal        `json:"goal"`
		Profile *domain.UserProfile `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Goal == nil || req.Profile == nil {
		http.Error(w, "Invalid request body: expected goal and profile", http.StatusBadRequest)
		return
	}
	if req.Goal.TimelineYears <= 0 {
		http.Error(w, "Goal timeline must be positive", http.StatusBadRequest)
		return
	}

	h.writeData(w, http.StatusOK, h.planner.CreatePlan(req.Goal, req.Profile))
}

// HandleProgress handles POST /api/goals/progress
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentAmount       float64 `json:"current_amount"`
		MonthlyContribution float64 `json:"monthly_contribution"`
		TimelineRemaining   float64 `json:"timeline_remaining"`
		TargetAmount        float64 `json:"target_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetAmount <= 0 {
		http.Error(w, "Target amount must be positive", http.StatusBadRequest)
		return
	}

	progress := h.planner.Progress(
		req.CurrentAmount, req.MonthlyContribution, req.TimelineRemaining, req.TargetAmount)
	h.writeData(w, http.StatusOK, progress)
}

// HandleOptimize handles POST /api/goals/optimize
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals   []domain.Goal       `json:"goals"`
		Profile *domain.UserProfile `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Profile == nil {
		http.Error(w, "Invalid request body: expected goals and profile", http.StatusBadRequest)
		return
	}

	h.writeData(w, http.StatusOK, h.planner.OptimizeGoals(req.Goals, req.Profile))
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
