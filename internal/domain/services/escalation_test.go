package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
)

func testGate() *EscalationGate {
	return NewEscalationGate(config.EscalationConfig{
		HighConfidence:      0.8,
		HighConfidenceTurns: 3,
		ModerateConfidence:  0.5,
		ModerateTurns:       8,
		MaxTurns:            15,
	}, testLogger())
}

func TestShouldEscalate(t *testing.T) {
	gate := testGate()

	tests := []struct {
		name       string
		confidence float64
		turns      int
		want       bool
		reason     string
	}{
		{"fresh session", 0.0, 1, false, ""},
		{"high confidence too early", 0.9, 2, false, ""},
		{"high confidence", 0.9, 3, true, EscalationHighConfidence},
		{"moderate confidence early", 0.6, 7, false, ""},
		{"sustained moderate confidence", 0.6, 8, true, EscalationSustainedConfidence},
		{"boundary confidence not above", 0.8, 5, false, ""},
		{"turn cap regardless of confidence", 0.0, 15, true, EscalationMaxTurns},
		{"quiet long session below cap", 0.1, 14, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &models.Session{Confidence: tt.confidence, TurnCount: tt.turns}
			got, reason := gate.ShouldEscalate(sess)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestAgentNotes(t *testing.T) {
	sess := models.NewSession("sess-1")
	sess.TurnCount = 6
	sess.Confidence = 0.85
	sess.Intelligence.ScamType = models.ScamTypeUPIFraud
	sess.Intelligence.SophisticationLevel = models.SophisticationMedium
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}
	sess.Intelligence.TacticPatterns = []string{"high_urgency_tactics"}
	sess.Intelligence.ClaimedIdentity = &models.ClaimedIdentity{Name: "Rahul", Title: "manager"}

	notes := AgentNotes(sess)

	assert.Contains(t, notes, "upi_fraud")
	assert.Contains(t, notes, "6 turns")
	assert.Contains(t, notes, "0.85")
	assert.Contains(t, notes, "1 payment handle(s)")
	assert.Contains(t, notes, "high_urgency_tactics")
	assert.Contains(t, notes, "name Rahul")
	assert.Contains(t, notes, "title manager")
}

func TestAgentNotesMinimalSession(t *testing.T) {
	sess := models.NewSession("sess-1")
	sess.TurnCount = 1

	notes := AgentNotes(sess)

	assert.Contains(t, notes, "1 turns")
	assert.NotContains(t, notes, "Collected")
	assert.NotContains(t, notes, "Actor gave")
}
