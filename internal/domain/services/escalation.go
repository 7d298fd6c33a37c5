package services

import (
	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// Escalation reasons, in evaluation priority order.
const (
	EscalationHighConfidence      = "high_confidence"
	EscalationSustainedConfidence = "sustained_confidence"
	EscalationMaxTurns            = "max_turns"
)

// EscalationGate decides when a session has yielded enough intelligence to be
// reported. A session escalates at most once; the Reported flag on the
// session is the terminal state and is checked by the caller under the
// session lock.
type EscalationGate struct {
	cfg    config.EscalationConfig
	logger *logger.Logger
}

// NewEscalationGate creates a gate with the configured thresholds.
func NewEscalationGate(cfg config.EscalationConfig, log *logger.Logger) *EscalationGate {
	return &EscalationGate{
		cfg:    cfg,
		logger: log.WithComponent("escalation"),
	}
}

// ShouldEscalate evaluates the gate conditions in priority order: high
// confidence after a few turns, moderate confidence over a longer exchange,
// then a hard turn cap regardless of confidence. Returns the matched reason.
func (g *EscalationGate) ShouldEscalate(sess *models.Session) (bool, string) {
	switch {
	case sess.Confidence > g.cfg.HighConfidence && sess.TurnCount >= g.cfg.HighConfidenceTurns:
		return true, EscalationHighConfidence
	case sess.Confidence > g.cfg.ModerateConfidence && sess.TurnCount >= g.cfg.ModerateTurns:
		return true, EscalationSustainedConfidence
	case sess.TurnCount >= g.cfg.MaxTurns:
		return true, EscalationMaxTurns
	}
	return false, ""
}
