package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/domain/services/intel"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/pkg/logger"
)

// HoneypotHandler handles conversation endpoints
type HoneypotHandler struct {
	engine *services.Engine
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewHoneypotHandler creates a new honeypot handler
func NewHoneypotHandler(engine *services.Engine, c *cache.RedisCache, log *logger.Logger) *HoneypotHandler {
	return &HoneypotHandler{
		engine: engine,
		cache:  c,
		logger: log.WithComponent("honeypot-handler"),
	}
}

// MessageRequest is the request body for an inbound conversation message
type MessageRequest struct {
	SessionID string                  `json:"sessionId"`
	Message   models.Message          `json:"message"`
	Metadata  *models.ChannelMetadata `json:"metadata,omitempty"`
}

// MessageResponse is the response for a processed message
type MessageResponse struct {
	Status       string  `json:"status"`
	Reply        string  `json:"reply"`
	ScamDetected bool    `json:"scamDetected"`
	Confidence   float64 `json:"confidence"`
	TurnCount    int     `json:"turnCount"`
}

// Message handles POST /honeypot/message - processes one conversation turn
func (h *HoneypotHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.engine.ProcessTurn(r.Context(), &models.TurnRequest{
		SessionID: req.SessionID,
		Message:   req.Message,
		Metadata:  req.Metadata,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingSessionID) || errors.Is(err, services.ErrEmptyMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("failed to process turn")
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		return
	}

	// Mutation invalidates any cached snapshot
	if h.cache != nil {
		if err := h.cache.InvalidateSession(r.Context(), req.SessionID); err != nil {
			h.logger.Debug().Err(err).Msg("failed to invalidate session cache")
		}
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Status:       "success",
		Reply:        result.Reply,
		ScamDetected: result.ScamDetected,
		Confidence:   result.Confidence,
		TurnCount:    result.TurnCount,
	})
}

// SessionResponse is the intelligence snapshot for a session
type SessionResponse struct {
	SessionID    string                       `json:"sessionId"`
	TurnCount    int                          `json:"turnCount"`
	Confidence   float64                      `json:"confidence"`
	Reported     bool                         `json:"reported"`
	Metadata     models.ChannelMetadata       `json:"metadata"`
	Intelligence models.ExtractedIntelligence `json:"intelligence"`
}

// GetSession handles GET /api/v1/sessions/{id} - returns a session snapshot
func (h *HoneypotHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	if h.cache != nil {
		var cached SessionResponse
		if err := h.cache.GetCachedSession(r.Context(), id, &cached); err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	sess, ok := h.engine.SnapshotIntelligence(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	response := SessionResponse{
		SessionID:    sess.SessionID,
		TurnCount:    sess.TurnCount,
		Confidence:   sess.Confidence,
		Reported:     sess.Reported,
		Metadata:     sess.Metadata,
		Intelligence: sess.Intelligence,
	}

	if h.cache != nil {
		if err := h.cache.CacheSession(r.Context(), id, response, time.Minute); err != nil {
			h.logger.Debug().Err(err).Msg("failed to cache session snapshot")
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// GetPatterns handles GET /api/v1/patterns - returns the detection vocabulary
func (h *HoneypotHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := struct {
		Version     string              `json:"version"`
		LastUpdated string              `json:"lastUpdated"`
		Keywords    map[string][]string `json:"keywords"`
	}{
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Keywords:    intel.KeywordCategories(),
	}

	writeJSON(w, http.StatusOK, patterns)
}
