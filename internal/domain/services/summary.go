package services

import (
	"fmt"
	"strings"

	"honeypot-lab/internal/domain/models"
)

// AgentNotes renders a human-readable summary of the engagement for the
// report payload.
func AgentNotes(sess *models.Session) string {
	ei := sess.Intelligence

	var b strings.Builder
	fmt.Fprintf(&b, "Engaged suspected %s actor over %d turns (confidence %.2f, sophistication %s).",
		ei.ScamType, sess.TurnCount, sess.Confidence, ei.SophisticationLevel)

	var collected []string
	if n := len(ei.BankAccounts); n > 0 {
		collected = append(collected, fmt.Sprintf("%d bank account(s)", n))
	}
	if n := len(ei.UPIIDs); n > 0 {
		collected = append(collected, fmt.Sprintf("%d payment handle(s)", n))
	}
	if n := len(ei.PhishingLinks); n > 0 {
		collected = append(collected, fmt.Sprintf("%d link(s)", n))
	}
	if n := len(ei.PhoneNumbers); n > 0 {
		collected = append(collected, fmt.Sprintf("%d phone number(s)", n))
	}
	if len(collected) > 0 {
		fmt.Fprintf(&b, " Collected %s.", strings.Join(collected, ", "))
	}

	if len(ei.TacticPatterns) > 0 {
		fmt.Fprintf(&b, " Observed tactics: %s.", strings.Join(ei.TacticPatterns, ", "))
	}
	if len(ei.ImpersonationClaims) > 0 {
		fmt.Fprintf(&b, " Impersonation: %s.", strings.Join(ei.ImpersonationClaims, ", "))
	}
	if id := ei.ClaimedIdentity; !id.Empty() {
		var parts []string
		if id.Name != "" {
			parts = append(parts, "name "+id.Name)
		}
		if id.Title != "" {
			parts = append(parts, "title "+id.Title)
		}
		if id.EmployeeID != "" {
			parts = append(parts, "employee ID "+id.EmployeeID)
		}
		if id.Branch != "" {
			parts = append(parts, "branch "+id.Branch)
		}
		fmt.Fprintf(&b, " Actor gave %s.", strings.Join(parts, ", "))
	}

	return b.String()
}
