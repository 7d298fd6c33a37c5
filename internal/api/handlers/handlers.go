package handlers

import (
	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/internal/session"
	"honeypot-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Honeypot *HoneypotHandler
	Stats    *StatsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine *services.Engine
	Store  session.Store
	Cache  *cache.RedisCache
	Config *config.Config
	Logger *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Config, deps.Logger),
		Honeypot: NewHoneypotHandler(deps.Engine, deps.Cache, deps.Logger),
		Stats:    NewStatsHandler(deps.Store, deps.Engine, deps.Cache, deps.Logger),
	}
}
