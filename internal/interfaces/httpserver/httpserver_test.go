package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/config"
	"github.com/personfinder/person-finder/internal/infrastructure/upstream"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/middlewares"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/mcp"
	v1 "github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/v1"
)

func newTestServer() *HTTPServer {
	service := domainsearch.NewSearchService(upstream.NewFixtureClient(0, nil, nil), domainsearch.ServiceConfig{Timeout: time.Second})
	orch := domainsearch.NewOrchestrator(service, domainsearch.OrchestratorConfig{})
	cfg := &config.Config{HTTPPort: "0", Environment: "test", ShutdownTimeout: time.Second}
	return NewHTTPServer(cfg, v1.NewSearchRoute(orch), mcp.NewMCPRoute(mcp.NewSearchMCP(service, domainsearch.OrchestratorConfig{}, nil)))
}

func TestHTTPServer_HealthEndpoints(t *testing.T) {
	server := newTestServer()

	for _, path := range []string{"/healthz", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "person-finder")
		})
	}
}

func TestHTTPServer_MetricsAfterSearch(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(`{"query":"John Doe"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middlewares.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(middlewares.RequestIDHeader))

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "person_finder_http_requests_total")
	assert.Contains(t, w.Body.String(), "person_finder_upstream_latency_seconds")
}

func TestHTTPServer_RequestIDGenerated(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/search/state", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))
}

func TestHTTPServer_CORSPreflight(t *testing.T) {
	server := newTestServer()

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/search", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
