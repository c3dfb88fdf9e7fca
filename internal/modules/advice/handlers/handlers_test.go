package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/advisor/internal/domain"
)

type stubProvider struct {
	lastQuery   string
	lastProfile *domain.UserProfile
}

func (s *stubProvider) GetAdvice(ctx context.Context, query string, profile *domain.UserProfile) string {
	s.lastQuery = query
	s.lastProfile = profile
	return "Advice for: " + query
}

func newTestRouter(provider domain.AdviceProvider) chi.Router {
	r := chi.NewRouter()
	NewHandler(provider, zerolog.Nop()).RegisterRoutes(r)
	return r
}

func TestHandleAdviceReturnsConversation(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(provider)

	body, _ := json.Marshal(AdviceRequest{
		Query:   "How do I start investing?",
		Profile: &domain.UserProfile{Name: "Sam", Age: 30},
	})
	req := httptest.NewRequest(http.MethodPost, "/advice", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data AdviceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, "How do I start investing?", envelope.Data.Query)
	assert.Equal(t, "Advice for: How do I start investing?", envelope.Data.Advice)
	assert.NotEmpty(t, envelope.Data.ConversationID)
	assert.Equal(t, "Sam", provider.lastProfile.Name)
}

func TestHandleAdviceRejectsEmptyQuery(t *testing.T) {
	router := newTestRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/advice", bytes.NewReader([]byte(`{"query":""}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStreamKeepsConversationID(t *testing.T) {
	server := httptest.NewServer(newTestRouter(&stubProvider{}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+server.URL[len("http"):]+"/advice/stream", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	ask := func(query string) AdviceResponse {
		require.NoError(t, wsjson.Write(ctx, conn, AdviceRequest{Query: query}))
		var resp AdviceResponse
		require.NoError(t, wsjson.Read(ctx, conn, &resp))
		return resp
	}

	first := ask("What is dollar-cost averaging?")
	second := ask("Should I rebalance yearly?")

	assert.Equal(t, "Advice for: What is dollar-cost averaging?", first.Advice)
	assert.Equal(t, "Advice for: Should I rebalance yearly?", second.Advice)
	assert.NotEmpty(t, first.ConversationID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}
