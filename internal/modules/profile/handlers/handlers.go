// Package handlers provides HTTP handlers for profile operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/profile"
)

// Handler handles profile HTTP requests
type Handler struct {
	service *profile.Service
	scorer  *profile.HealthScorer
	log     zerolog.Logger
}

// NewHandler creates a new profile handler
func NewHandler(service *profile.Service, scorer *profile.HealthScorer, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		scorer:  scorer,
		log:     log.With().Str("handler", "profile").Logger(),
	}
}

// HandleValidate handles POST /api/profiles/validate
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var input profile.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	errors := h.service.Validator().Validate(&input)
	if errors == nil {
		errors = []string{}
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"valid":  len(errors) == 0,
		"errors": errors,
	})
}

// HandleCreate handles POST /api/profiles
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input profile.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(&input)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	h.log.Info().Str("profile_id", created.ProfileID).Msg("Profile created")
	h.writeData(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/profiles
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Existing *domain.UserProfile `json:"existing"`
		Updates  *profile.Input      `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Existing == nil || req.Updates == nil {
		http.Error(w, "Invalid request body: expected existing profile and updates", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(req.Existing, req.Updates)
	if err != nil {
		h.writeValidationError(w, err)
		return
	}

	h.log.Info().Str("profile_id", updated.ProfileID).Msg("Profile updated")
	h.writeData(w, http.StatusOK, updated)
}

// HandleHealthScore handles POST /api/profiles/health-score
func (h *Handler) HandleHealthScore(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, h.scorer.Score(userProfile))
}

// HandleSegment handles POST /api/profiles/segment
func (h *Handler) HandleSegment(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	h.writeData(w, http.StatusOK, map[string]interface{}{
		"segment": profile.Segment(userProfile),
	})
}

// HandleCompare handles POST /api/profiles/compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profile1 *domain.UserProfile `json:"profile1"`
		Profile2 *domain.UserProfile `json:"profile2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Profile1 == nil || req.Profile2 == nil {
		http.Error(w, "Invalid request body: expected profile1 and profile2", http.StatusBadRequest)
		return
	}

	h.writeData(w, http.StatusOK, profile.Compare(req.Profile1, req.Profile2))
}

// HandleAnalytics handles POST /api/profiles/analytics
func (h *Handler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Profiles []*domain.UserProfile `json:"profiles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	analytics := profile.Analyze(req.Profiles)
	if analytics == nil {
		http.Error(w, "No profiles provided", http.StatusBadRequest)
		return
	}

	h.writeData(w, http.StatusOK, analytics)
}

// HandleExport handles POST /api/profiles/export?format=json|summary
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userProfile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		exported, err := userProfile.ToJSON()
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to export profile")
			http.Error(w, "Failed to export profile", http.StatusInternalServerError)
			return
		}
		h.writeData(w, http.StatusOK, map[string]interface{}{
			"format":  "json",
			"content": exported,
		})
	case "summary":
		h.writeData(w, http.StatusOK, map[string]interface{}{
			"format":  "summary",
			"content": userProfile.Summary(),
		})
	default:
		http.Error(w, "Unsupported export format. Use 'json' or 'summary'", http.StatusBadRequest)
	}
}

// decodeProfile reads a bare profile from the request body.
func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (*domain.UserProfile, bool) {
	var userProfile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&userProfile); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &userProfile, true
}

// writeValidationError maps validation failures to 422 responses with the
// full error list; anything else becomes a 500.
func (h *Handler) writeValidationError(w http.ResponseWriter, err error) {
	var validationErr *profile.ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "Profile validation failed",
			"errors": validationErr.Errors,
			"metadata": map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
			},
		})
		return
	}

	h.log.Error().Err(err).Msg("Profile operation failed")
	http.Error(w, "Profile operation failed", http.StatusInternalServerError)
}

// writeData writes the standard data+metadata envelope.
func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
