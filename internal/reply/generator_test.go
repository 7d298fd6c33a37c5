package reply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func sessionWithTactics(tactics ...string) *models.Session {
	sess := models.NewSession("sess-1")
	sess.History = append(sess.History, models.Message{Sender: models.SenderScammer, Text: "hello"})
	sess.TurnCount = 1
	sess.Intelligence.TacticPatterns = tactics
	return sess
}

func TestGenerateFallbackOnEmptySession(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	text, err := g.Generate(context.Background(), models.NewSession("sess-1"))
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, text)
}

func TestGenerateThreatPool(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	text, err := g.Generate(context.Background(), sessionWithTactics("threat_based_coercion"))
	require.NoError(t, err)
	assert.Contains(t, threatReplies, text)
}

func TestGenerateUrgencyPool(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	text, err := g.Generate(context.Background(), sessionWithTactics("high_urgency_tactics"))
	require.NoError(t, err)
	assert.Contains(t, urgencyReplies, text)
}

func TestGeneratePaymentPool(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	sess := sessionWithTactics()
	sess.Intelligence.UPIIDs = []string{"scammer@paytm"}

	text, err := g.Generate(context.Background(), sess)
	require.NoError(t, err)
	assert.Contains(t, paymentReplies, text)
}

func TestGenerateDefaultPool(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	text, err := g.Generate(context.Background(), sessionWithTactics())
	require.NoError(t, err)
	assert.Contains(t, defaultReplies, text)
}

func TestGenerateRotatesByTurn(t *testing.T) {
	g := NewPersonaGenerator(testLogger())

	sess := sessionWithTactics()
	first, err := g.Generate(context.Background(), sess)
	require.NoError(t, err)

	sess.TurnCount = 2
	second, err := g.Generate(context.Background(), sess)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
