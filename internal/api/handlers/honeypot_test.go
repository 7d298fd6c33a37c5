package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/reply"
	"honeypot-lab/internal/reporting"
	"honeypot-lab/internal/session"
	"honeypot-lab/pkg/logger"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	cfg := &config.Config{}
	cfg.App.Name = "honeypot-lab"
	cfg.App.Version = "test"
	cfg.Engine = config.EngineConfig{
		DetectionThreshold: 0.3,
		DefaultCountryCode: "91",
		Weights: config.ConfidenceWeights{
			UPIID:              0.3,
			PhishingLink:       0.3,
			BankAccount:        0.2,
			PhoneNumber:        0.1,
			TacticPattern:      0.05,
			ImpersonationClaim: 0.05,
			OrganizationalClue: 0.05,
		},
		Escalation: config.EscalationConfig{
			HighConfidence:      0.8,
			HighConfidenceTurns: 3,
			ModerateConfidence:  0.5,
			ModerateTurns:       8,
			MaxTurns:            15,
		},
	}

	store := session.NewMemoryStore(log)
	engine := services.NewEngine(cfg.Engine, store, reporting.NewLogReporter(log), reply.NewPersonaGenerator(log), nil, log)

	return NewHandlers(Dependencies{
		Engine: engine,
		Store:  store,
		Config: cfg,
		Logger: log,
	})
}

func testRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health.Check)
	r.Post("/honeypot/message", h.Honeypot.Message)
	r.Get("/api/v1/stats", h.Stats.Get)
	r.Get("/api/v1/patterns", h.Honeypot.GetPatterns)
	r.Get("/api/v1/sessions/{id}", h.Honeypot.GetSession)
	return r
}

func postMessage(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/honeypot/message", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMessageEndpoint(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{
		"sessionId": "sess-1",
		"message": {"sender": "scammer", "text": "Send Rs 500 to scammer@paytm or account 1234567890123456 will be frozen urgently"}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "success", resp.Status)
	assert.True(t, resp.ScamDetected)
	assert.Greater(t, resp.Confidence, 0.0)
	assert.Equal(t, 1, resp.TurnCount)
	assert.NotEmpty(t, resp.Reply)
}

func TestMessageEndpointInvalidBody(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageEndpointMissingSessionID(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{"message": {"sender": "scammer", "text": "hello"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageEndpointEmptyText(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{"sessionId": "sess-1", "message": {"sender": "scammer", "text": "  "}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionEndpoint(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{"sessionId": "sess-1", "message": {"sender": "scammer", "text": "Pay scammer@paytm now"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/sess-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, 1, resp.TurnCount)
	assert.Contains(t, resp.Intelligence.UPIIDs, "scammer@paytm")
}

func TestGetSessionNotFound(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPatternsEndpoint(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Keywords map[string][]string `json:"keywords"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Keywords, "urgency")
	assert.Contains(t, resp.Keywords["credential"], "otp")
}

func TestStatsEndpoint(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	rec := postMessage(t, router, `{"sessionId": "sess-1", "message": {"sender": "scammer", "text": "Pay scammer@paytm urgently"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats session.Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.ScamSessions)
	assert.Equal(t, 1, stats.UPIIDs)
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(newTestHandlers(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "healthy"))
	assert.True(t, strings.Contains(rec.Body.String(), "entity_extraction"))
}
