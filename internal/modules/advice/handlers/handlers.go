// Package handlers provides HTTP and websocket handlers for the
// conversational advisor.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/advisor/internal/domain"
)

// adviceTimeout bounds a single model round trip.
const adviceTimeout = 60 * time.Second

// AdviceRequest is a single advice question with optional profile context.
type AdviceRequest struct {
	Query   string              `json:"query"`
	Profile *domain.UserProfile `json:"profile"`
}

// AdviceResponse pairs the answer with its conversation identity.
type AdviceResponse struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
	Advice         string `json:"advice"`
	Timestamp      string `json:"timestamp"`
}

// Handler handles advice HTTP requests
type Handler struct {
	provider domain.AdviceProvider
	log      zerolog.Logger
}

// NewHandler creates a new advice handler
func NewHandler(provider domain.AdviceProvider, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log.With().Str("handler", "advice").Logger(),
	}
}

// HandleAdvice handles POST /api/advice
func (h *Handler) HandleAdvice(w http.ResponseWriter, r *http.Request) {
	var req AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "Query is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), adviceTimeout)
	defer cancel()

	response := AdviceResponse{
		ConversationID: uuid.New().String(),
		Query:          req.Query,
		Advice:         h.provider.GetAdvice(ctx, req.Query, req.Profile),
		Timestamp:      time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	envelope := map[string]interface{}{
		"data": response,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// HandleStream handles GET /api/advice/stream. Each connection is one
// conversation: the client sends AdviceRequest frames and receives one
// AdviceResponse per question, all tagged with the same conversation ID.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")

	conversationID := uuid.New().String()
	h.log.Info().Str("conversation_id", conversationID).Msg("Advice stream opened")

	for {
		var req AdviceRequest
		if err := wsjson.Read(r.Context(), conn, &req); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				h.log.Info().Str("conversation_id", conversationID).Msg("Advice stream closed")
				conn.Close(websocket.StatusNormalClosure, "")
			} else {
				h.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Advice stream read failed")
			}
			return
		}

		if req.Query == "" {
			if err := wsjson.Write(r.Context(), conn, map[string]string{"error": "query is required"}); err != nil {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(r.Context(), adviceTimeout)
		advice := h.provider.GetAdvice(ctx, req.Query, req.Profile)
		cancel()

		response := AdviceResponse{
			ConversationID: conversationID,
			Query:          req.Query,
			Advice:         advice,
			Timestamp:      time.Now().Format(time.RFC3339),
		}
		if err := wsjson.Write(r.Context(), conn, response); err != nil {
			h.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Advice stream write failed")
			return
		}
	}
}
