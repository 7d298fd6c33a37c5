package intel

import (
	"fmt"
	"regexp"
	"strings"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// TacticClassifier tags social-engineering tactics, impersonation claims, and
// organizational clues in a single message. Stateless, same merge contract as
// the entity extractor.
type TacticClassifier struct {
	logger *logger.Logger
}

// TacticResult is the per-message classification output.
type TacticResult struct {
	Tactics  []string
	Claims   []string
	OrgClues []string
	Identity *models.ClaimedIdentity
}

// tacticVocabulary maps tactic tags to trigger phrases. A message gets a tag
// when any phrase appears; each tag at most once per message.
var tacticVocabulary = []struct {
	Tag      string
	Triggers []string
}{
	{"high_urgency_tactics", []string{"urgent", "immediately", "right now", "within minutes", "within seconds", "today only", "within 24"}},
	{"legal_threat_tactics", []string{"legal action", "arrest", "court", "police", "case filed", "fir"}},
	{"threat_based_coercion", []string{"blocked", "locked", "suspended", "closed", "freeze", "frozen"}},
	{"authority_impersonation", []string{"officer", "manager", "bank", "official", "department", "government", "fraud prevention"}},
	{"social_engineering", []string{"verify", "confirm", "secure", "protect"}},
	{"false_legitimacy", []string{"account number", "otp", "official", "secure line", "registered"}},
	{"manager_escalation_evasion", []string{"manager", "escalat", "senior", "supervisor"}},
	{"information_gathering", []string{"share", "send", "forward", "provide", "confirm"}},
}

// claimVocabulary maps impersonation-claim tags to trigger phrases.
var claimVocabulary = []struct {
	Tag      string
	Triggers []string
}{
	{"bank_official", []string{"sbi", "hdfc", "icici", "axis", "bank of", "reserve bank", "bank"}},
	{"government_official", []string{"rbi", "income tax", "gst", "government", "ministry", "customs"}},
	{"lottery_organizer", []string{"lottery", "prize", "winner", "lucky draw"}},
	{"officer_impersonation", []string{"officer"}},
	{"manager_impersonation", []string{"manager"}},
}

var (
	namePattern     = regexp.MustCompile(`\b(?:[Ii] am|[Tt]his is|[Mm]y name is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	employeePattern = regexp.MustCompile(`(?i)employee\s+(?:id|number)[\s:]*([A-Za-z0-9-]+)`)
	branchPattern   = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s+(?:branch|office)\b`)
)

// knownTitles is ordered longest-first so the most specific title wins.
var knownTitles = []string{
	"senior fraud officer",
	"fraud prevention officer",
	"fraud officer",
	"security officer",
	"account manager",
	"senior manager",
	"bank manager",
	"officer",
	"manager",
}

// NewTacticClassifier creates a new tactic classifier
func NewTacticClassifier(log *logger.Logger) *TacticClassifier {
	return &TacticClassifier{
		logger: log.WithComponent("tactic-classifier"),
	}
}

// Classify tags a single message.
func (c *TacticClassifier) Classify(text string) TacticResult {
	lower := strings.ToLower(text)

	result := TacticResult{
		Tactics:  c.matchTactics(lower),
		Claims:   c.matchClaims(lower),
		OrgClues: c.matchOrgClues(text, lower),
		Identity: c.extractIdentity(text, lower),
	}

	if len(result.Tactics) > 0 || len(result.Claims) > 0 {
		c.logger.Debug().
			Strs("tactics", result.Tactics).
			Strs("claims", result.Claims).
			Msg("tactics classified")
	}

	return result
}

func (c *TacticClassifier) matchTactics(lower string) []string {
	var tags []string
	for _, entry := range tacticVocabulary {
		for _, trigger := range entry.Triggers {
			if strings.Contains(lower, trigger) {
				tags = append(tags, entry.Tag)
				break
			}
		}
	}
	return tags
}

func (c *TacticClassifier) matchClaims(lower string) []string {
	var tags []string
	for _, entry := range claimVocabulary {
		for _, trigger := range entry.Triggers {
			if strings.Contains(lower, trigger) {
				tags = append(tags, entry.Tag)
				break
			}
		}
	}
	return tags
}

// matchOrgClues collects structural hints about the claimed organization.
func (c *TacticClassifier) matchOrgClues(text, lower string) []string {
	var clues []string
	seen := make(map[string]bool)

	add := func(clue string) {
		if !seen[clue] {
			seen[clue] = true
			clues = append(clues, clue)
		}
	}

	for _, m := range branchPattern.FindAllStringSubmatch(text, -1) {
		add(fmt.Sprintf("branch_%s", strings.ToLower(strings.ReplaceAll(m[1], " ", "_"))))
	}

	if strings.Contains(lower, "fraud prevention") {
		add("fraud_prevention_department")
	}
	if strings.Contains(lower, "security department") || strings.Contains(lower, "security team") {
		add("security_department")
	}

	roles := []string{"manager", "senior", "supervisor", "team", "head office", "colleague"}
	for _, role := range roles {
		if strings.Contains(lower, role) {
			add("mentioned_" + strings.ReplaceAll(role, " ", "_"))
		}
	}

	return clues
}

// extractIdentity pulls out whatever the actor volunteered about themselves.
// Returns nil when nothing was found.
func (c *TacticClassifier) extractIdentity(text, lower string) *models.ClaimedIdentity {
	identity := &models.ClaimedIdentity{}

	if m := namePattern.FindStringSubmatch(text); m != nil {
		identity.Name = m[1]
	}
	if m := employeePattern.FindStringSubmatch(text); m != nil {
		identity.EmployeeID = m[1]
	}
	if m := branchPattern.FindStringSubmatch(text); m != nil {
		identity.Branch = m[1]
	}
	for _, title := range knownTitles {
		if strings.Contains(lower, title) {
			identity.Title = title
			break
		}
	}

	if identity.Empty() {
		return nil
	}
	return identity
}
