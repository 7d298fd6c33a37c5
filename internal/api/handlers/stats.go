package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/internal/session"
	"honeypot-lab/pkg/logger"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	store  session.Store
	engine *services.Engine
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(store session.Store, engine *services.Engine, c *cache.RedisCache, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		store:  store,
		engine: engine,
		cache:  c,
		logger: log.WithComponent("stats"),
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var stats session.Stats

	// Try cache first; stats tolerate short staleness
	if h.cache != nil {
		if err := h.cache.GetJSON(r.Context(), cache.KeyStats, &stats); err == nil {
			writeJSON(w, http.StatusOK, stats)
			return
		}
	}

	stats = h.store.Stats(h.engine.DetectionThreshold())

	if h.cache != nil {
		if err := h.cache.SetJSON(r.Context(), cache.KeyStats, stats, 30*time.Second); err != nil {
			h.logger.Debug().Err(err).Msg("failed to cache stats")
		}
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
