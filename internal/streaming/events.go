package streaming

import (
	"time"

	"honeypot-lab/internal/domain/models"
)

// EventType represents the type of session event
type EventType string

const (
	EventTypeSessionCreated      EventType = "session_created"
	EventTypeIntelligenceUpdated EventType = "intelligence_updated"
	EventTypeSessionReported     EventType = "session_reported"
)

// SessionEvent is a real-time update about a honeypot conversation.
type SessionEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	SessionID    string          `json:"sessionId"`
	TurnCount    int             `json:"turnCount"`
	Confidence   float64         `json:"confidence"`
	ScamType     models.ScamType `json:"scamType,omitempty"`
	ScamDetected bool            `json:"scamDetected"`

	// Escalation reason, present on session_reported
	Reason string `json:"reason,omitempty"`
}
