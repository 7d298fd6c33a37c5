package reply

import (
	"context"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// FallbackReply is used whenever generation fails. The turn itself never
// aborts because of the reply.
const FallbackReply = "I'm not sure I understand. Could you please clarify?"

// Generator produces the honeypot persona's next reply from a read-only
// session snapshot.
type Generator interface {
	Generate(ctx context.Context, sess *models.Session) (string, error)
}

// PersonaGenerator is a deterministic generator playing a confused, compliant
// victim. It keys off the latest tactics and rotates probes by turn count so
// repeated turns don't produce identical conversations.
type PersonaGenerator struct {
	logger *logger.Logger
}

// NewPersonaGenerator creates the default persona generator.
func NewPersonaGenerator(log *logger.Logger) *PersonaGenerator {
	return &PersonaGenerator{logger: log.WithComponent("persona")}
}

var (
	urgencyReplies = []string{
		"Oh no, that sounds serious. What exactly do I need to do?",
		"I don't want any trouble. Please tell me the steps again slowly.",
		"This is worrying me. How much time do I have?",
	}
	paymentReplies = []string{
		"I have never done this before. Which app should I open?",
		"My son usually helps me with payments. Can you stay on while I try?",
		"It says it needs a confirmation. What should I enter?",
	}
	threatReplies = []string{
		"Please don't block my account, I need it for my pension.",
		"Is there any way to fix this without going to the branch?",
		"I didn't do anything wrong. Who should I speak to about this?",
	}
	identityReplies = []string{
		"Which department did you say you are from?",
		"Can you tell me your name and employee number again? I want to write it down.",
		"How do I know this call is really from the bank?",
	}
	defaultReplies = []string{
		"Sorry, I am a bit slow with these things. Can you explain once more?",
		"Okay, I am listening. What happens next?",
		"Let me get my reading glasses. Please repeat that.",
	}
)

// Generate implements Generator.
func (g *PersonaGenerator) Generate(_ context.Context, sess *models.Session) (string, error) {
	if sess == nil || len(sess.History) == 0 {
		return FallbackReply, nil
	}

	pool := defaultReplies
	tactics := latestTactics(sess)
	switch {
	case tactics["threat_based_coercion"] || tactics["legal_threat_tactics"]:
		pool = threatReplies
	case tactics["high_urgency_tactics"]:
		pool = urgencyReplies
	case len(sess.Intelligence.UPIIDs) > 0 || len(sess.Intelligence.BankAccounts) > 0:
		pool = paymentReplies
	case tactics["authority_impersonation"]:
		pool = identityReplies
	}

	reply := pool[sess.TurnCount%len(pool)]

	g.logger.Debug().
		Str("session_id", sess.SessionID).
		Int("turn", sess.TurnCount).
		Msg("persona reply generated")

	return reply, nil
}

func latestTactics(sess *models.Session) map[string]bool {
	out := make(map[string]bool, len(sess.Intelligence.TacticPatterns))
	for _, t := range sess.Intelligence.TacticPatterns {
		out[t] = true
	}
	return out
}
