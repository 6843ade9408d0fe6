package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metabo-score-server/internal/domain"
	"github.com/metabo-score-server/internal/service"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &domain.Config{
		Server: domain.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
		Logging: domain.LoggingConfig{Level: "error", Format: "json"},
		API: domain.APIConfig{
			RateLimitPerSecond: 100,
			RateLimitBurst:     100,
			ReportCacheSize:    16,
		},
	}

	registry, err := service.NewDefaultCutoffRegistry()
	require.NoError(t, err)

	engine, err := service.NewScoringEngine(logger, registry, service.DefaultScoringBands())
	require.NoError(t, err)

	server, err := NewServer(logger, cfg, engine, registry)
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestScoreEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/score", map[string]any{
		"name":            "Jane Roe",
		"sex":             "F",
		"wbc":             10.0,
		"neutrophil_pct":  50.0,
		"lymphocyte_pct":  20.0,
		"fasting_glucose": 110.0,
		"triglycerides":   180.0,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "Jane Roe", report.PatientName)
	assert.Len(t, report.Indices, 19)
	assert.Len(t, report.Domains, 4)

	nlr, ok := report.Index(domain.IndexNLR)
	require.True(t, ok)
	assert.Equal(t, domain.SeverityMild, nlr.Severity)
}

func TestScoreEndpointMalformedFieldsDegrade(t *testing.T) {
	s := testServer(t)

	// Garbage field values degrade to NA; the request still succeeds.
	w := doJSON(t, s, http.MethodPost, "/api/v1/score", map[string]any{
		"wbc": "garbage",
		"age": []int{1, 2},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 0.0, report.TotalScore)
	assert.Equal(t, domain.RiskVeryLow, report.RiskCategory)
}

func TestScoreEndpointRejectsNonObjectBody(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, domain.ErrInvalidInput, apiErr.Code)
}

func TestReportRetrieval(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/score", map[string]any{"name": "Jane Roe"})
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

	w = doJSON(t, s, http.MethodGet, "/api/v1/report/"+report.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, report.ID, fetched.ID)
	assert.Equal(t, "Jane Roe", fetched.PatientName)
}

func TestReportRetrievalNotFound(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/report/unknown-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var apiErr domain.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, domain.ErrNotFound, apiErr.Code)
}

func TestIndexCatalogEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/indices", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Indices []indexCatalogEntry `json:"indices"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Indices, 19)

	first := resp.Indices[0]
	assert.Equal(t, "NLR", first.Code)
	assert.Equal(t, "Neutrophil-to-Lymphocyte Ratio", first.FullForm)
	assert.Equal(t, "ANC / ALC", first.Formula)
	assert.Equal(t, "Inflammation", first.Domain)
	assert.Len(t, first.Bands, 4)
}

func TestRateLimitExceeded(t *testing.T) {
	s := testServer(t)
	s.config.API.RateLimitPerSecond = 1
	s.config.API.RateLimitBurst = 1

	// Rebuild routes so the limiter picks up the tightened config.
	rebuildRouter(s)

	first := doJSON(t, s, http.MethodPost, "/api/v1/score", map[string]any{})
	assert.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, s, http.MethodPost, "/api/v1/score", map[string]any{})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

// rebuildRouter rebuilds the gin engine with the current config.
func rebuildRouter(s *Server) {
	s.router = gin.New()
	s.router.Use(requestIDMiddleware())
	s.setupRoutes()
}
