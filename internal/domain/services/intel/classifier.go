package intel

import (
	"strings"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// ScamClassifier derives the scam category and a sophistication grade from
// accumulated session evidence.
type ScamClassifier struct {
	logger *logger.Logger
}

// Sophistication scoring thresholds. The additive score buckets into
// high at SophisticationHighScore and medium at SophisticationMediumScore.
const (
	SophisticationHighScore   = 8
	SophisticationMediumScore = 4
)

// scamTypeRules is the ordered decision list. The first matching rule wins;
// order encodes priority.
var scamTypeRules = []struct {
	Type     models.ScamType
	Triggers []string
}{
	{models.ScamTypeUPIFraud, []string{"upi", "paytm", "phonepe", "gpay", "google pay", "vpa"}},
	{models.ScamTypeBanking, []string{"kyc", "account", "bank", "debit card", "net banking"}},
	{models.ScamTypeOTPFraud, []string{"otp", "verification code", "one time password", "cvv", "password"}},
	{models.ScamTypePhishing, []string{"click", "http", "link", "www.", "login here"}},
	{models.ScamTypeLottery, []string{"lottery", "prize", "winner", "won", "congratulations", "lucky draw"}},
	{models.ScamTypeInvestment, []string{"invest", "returns", "profit", "trading", "double your money"}},
}

// NewScamClassifier creates a new scam classifier
func NewScamClassifier(log *logger.Logger) *ScamClassifier {
	return &ScamClassifier{
		logger: log.WithComponent("scam-classifier"),
	}
}

// ClassifyType picks a scam category from everything the counterpart has said
// so far, plus already-extracted handles and links. Falls back to
// banking_fraud when nothing matches. Callers stop reclassifying once a
// non-fallback category is assigned; that first classification sticks.
func (c *ScamClassifier) ClassifyType(sess *models.Session) models.ScamType {
	corpus := strings.ToLower(strings.Join(sess.ScammerMessages(), " "))

	if len(sess.Intelligence.UPIIDs) > 0 {
		return models.ScamTypeUPIFraud
	}

	for _, rule := range scamTypeRules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(corpus, trigger) {
				return rule.Type
			}
		}
		if rule.Type == models.ScamTypePhishing && len(sess.Intelligence.PhishingLinks) > 0 {
			return models.ScamTypePhishing
		}
	}

	return models.ScamTypeBanking
}

// AssessSophistication recomputes the sophistication grade from the full
// session. Unlike the scam type it is not sticky and can move down.
//
// Score: counterpart average words per message >20 adds 3, >10 adds 1; each
// populated entity category adds 1; any organizational clue adds 2; two or
// more tactic tags add 2; turn count past 12 adds 2.
func (c *ScamClassifier) AssessSophistication(sess *models.Session) models.SophisticationLevel {
	score := 0

	msgs := sess.ScammerMessages()
	if len(msgs) > 0 {
		words := 0
		for _, m := range msgs {
			words += len(strings.Fields(m))
		}
		avg := float64(words) / float64(len(msgs))
		switch {
		case avg > 20:
			score += 3
		case avg > 10:
			score++
		}
	}

	intel := sess.Intelligence
	for _, populated := range []bool{
		len(intel.BankAccounts) > 0,
		len(intel.UPIIDs) > 0,
		len(intel.PhishingLinks) > 0,
		len(intel.PhoneNumbers) > 0,
		len(intel.SuspiciousKeywords) > 0,
	} {
		if populated {
			score++
		}
	}

	if len(intel.OrganizationalClues) > 0 {
		score += 2
	}
	if len(intel.TacticPatterns) >= 2 {
		score += 2
	}
	if sess.TurnCount > 12 {
		score += 2
	}

	switch {
	case score >= SophisticationHighScore:
		return models.SophisticationHigh
	case score >= SophisticationMediumScore:
		return models.SophisticationMedium
	default:
		return models.SophisticationLow
	}
}
