// Package handlers provides HTTP handlers for recommendation operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/recommendations"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	engine *recommendations.Engine
	log    zerolog.Logger
}

// NewHandler creates a new recommendations handler
func NewHandler(engine *recommendations.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "recommendations").Logger(),
	}
}

// HandleInvestments handles POST /api/recommendations/investments
func (h *Handler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	recs, err := h.engine.Investment(userProfile)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate investment recommendations")
		http.Error(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	h.writeData(w, http.StatusOK, recs)
}

// HandleInsurance handles POST /api/recommendations/insurance
func (h *Handler) HandleInsurance(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, h.engine.Insurance(userProfile))
}

// HandleComprehensive handles POST /api/recommendations/comprehensive
func (h *Handler) HandleComprehensive(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	recs, err := h.engine.Comprehensive(userProfile)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate comprehensive recommendations")
		http.Error(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	h.writeData(w, http.StatusOK, recs)
}

// HandleSegments handles POST /api/recommendations/segments
func (h *Handler) HandleSegments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profiles []*domain.UserProfile `json:"profiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	segments := h.engine.GenerateUserSegments(req.Profiles)
	if segments == nil {
		h.writeData(w, http.StatusOK, map[string]interface{}{
			"segments": nil,
			"message":  "At least 5 profiles are required for segmentation",
		})
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"segments": segments,
	})
}

// HandleSimilar handles POST /api/recommendations/similar
func (h *Handler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile  *domain.UserProfile   `json:"profile"`
		Profiles []*domain.UserProfile `json:"profiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Profile == nil {
		http.Error(w, "Invalid request body: expected profile and profiles", http.StatusBadRequest)
		return
	}

	recs, err := h.engine.Collaborative(req.Profile, req.Profiles)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate collaborative recommendations")
		http.Error(w, "Failed to generate recommendations", http.StatusInternalServerError)
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"similar_users":   len(h.engine.FindSimilarUsers(req.Profile, req.Profiles)),
		"recommendations": recs,
	})
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
