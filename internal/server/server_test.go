package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/advisor/internal/clients/marketdata"
	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/modules/goals"
	"github.com/aristath/advisor/internal/modules/portfolio"
	"github.com/aristath/advisor/internal/modules/profile"
	"github.com/aristath/advisor/internal/modules/recommendations"
)

type cannedAdvice struct{}

func (cannedAdvice) GetAdvice(ctx context.Context, query string, p *domain.UserProfile) string {
	return "canned advice"
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:server_test?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "server-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog := recommendations.NewCatalogRepository(db.Conn())
	require.NoError(t, catalog.InitSchema())
	require.NoError(t, catalog.Seed())

	log := zerolog.Nop()
	market := marketdata.NewClient("http://127.0.0.1:1", nil, log)

	return New(Config{
		Log:               log,
		Cfg:               &config.Config{},
		Port:              0,
		ProfileService:    profile.NewService(),
		HealthScorer:      profile.NewHealthScorer(),
		GoalPlanner:       goals.NewPlanner(log),
		PortfolioAnalyzer: portfolio.NewAnalyzer(market, log),
		Engine:            recommendations.NewEngine(catalog, log),
		Market:            market,
		Advice:            cannedAdvice{},
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, path)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "advisor", body["service"])
	}
}

func TestMarketOverviewRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/market/overview", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]domain.IndexQuote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 4)
}

func TestAdviceRoute(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"query": "How should I invest?",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/advice", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "canned advice")
}

func TestProfileValidateRoute(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Sam Rivera",
	})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/profiles/validate", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"valid":false`)
	assert.Contains(t, rec.Body.String(), "Missing required field: age")
}

func TestSystemInfoRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/system/info", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data, "go_version")
	assert.Contains(t, envelope.Data, "goroutines")
}
