package models

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	// SenderScammer is the suspected fraud actor on the other end.
	SenderScammer Sender = "scammer"
	// SenderAgent is the honeypot persona replying to them.
	SenderAgent Sender = "user"
)

// ScamType categorizes the fraud scheme. The first non-fallback classification
// sticks; only the banking_fraud default can be upgraded by later turns.
type ScamType string

const (
	ScamTypeUnknown    ScamType = "unknown"
	ScamTypeUPIFraud   ScamType = "upi_fraud"
	ScamTypeBanking    ScamType = "banking_fraud"
	ScamTypeOTPFraud   ScamType = "otp_fraud"
	ScamTypePhishing   ScamType = "phishing"
	ScamTypeLottery    ScamType = "lottery_scam"
	ScamTypeInvestment ScamType = "investment_scam"
)

// SophisticationLevel grades how practiced the actor appears. Recomputed on
// every turn from the full session, so it can move in either direction.
type SophisticationLevel string

const (
	SophisticationUnknown SophisticationLevel = "unknown"
	SophisticationLow     SophisticationLevel = "low"
	SophisticationMedium  SophisticationLevel = "medium"
	SophisticationHigh    SophisticationLevel = "high"
)

// Message is a single conversation turn as received or sent.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"` // epoch millis
}

// ChannelMetadata describes where the conversation is happening. Applied when
// the session is first seen and immutable afterwards.
type ChannelMetadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// ClaimedIdentity holds whatever identity details the actor volunteered about
// themselves. Every field is optional.
type ClaimedIdentity struct {
	Name       string `json:"name,omitempty"`
	EmployeeID string `json:"employeeId,omitempty"`
	Branch     string `json:"branch,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Empty reports whether no identity detail has been captured.
func (c *ClaimedIdentity) Empty() bool {
	return c == nil || (c.Name == "" && c.EmployeeID == "" && c.Branch == "" && c.Title == "")
}

// ExtractedIntelligence accumulates everything learned about the actor across
// the session. The slice fields are ordered sets: items appear once, in the
// order first observed.
type ExtractedIntelligence struct {
	BankAccounts        []string            `json:"bankAccounts"`
	UPIIDs              []string            `json:"upiIds"`
	PhishingLinks       []string            `json:"phishingLinks"`
	PhoneNumbers        []string            `json:"phoneNumbers"`
	SuspiciousKeywords  []string            `json:"suspiciousKeywords"`
	TacticPatterns      []string            `json:"tacticPatterns"`
	OrganizationalClues []string            `json:"organizationalClues"`
	ImpersonationClaims []string            `json:"impersonationClaims"`
	ScamType            ScamType            `json:"scamType"`
	SophisticationLevel SophisticationLevel `json:"sophisticationLevel"`
	ClaimedIdentity     *ClaimedIdentity    `json:"claimedIdentity,omitempty"`
}

// NewExtractedIntelligence returns an empty record with non-nil collections so
// JSON consumers always see arrays.
func NewExtractedIntelligence() ExtractedIntelligence {
	return ExtractedIntelligence{
		BankAccounts:        []string{},
		UPIIDs:              []string{},
		PhishingLinks:       []string{},
		PhoneNumbers:        []string{},
		SuspiciousKeywords:  []string{},
		TacticPatterns:      []string{},
		OrganizationalClues: []string{},
		ImpersonationClaims: []string{},
		ScamType:            ScamTypeUnknown,
		SophisticationLevel: SophisticationUnknown,
	}
}

// Clone returns a deep copy safe to hand out while the session keeps mutating.
func (ei ExtractedIntelligence) Clone() ExtractedIntelligence {
	out := ei
	out.BankAccounts = append([]string{}, ei.BankAccounts...)
	out.UPIIDs = append([]string{}, ei.UPIIDs...)
	out.PhishingLinks = append([]string{}, ei.PhishingLinks...)
	out.PhoneNumbers = append([]string{}, ei.PhoneNumbers...)
	out.SuspiciousKeywords = append([]string{}, ei.SuspiciousKeywords...)
	out.TacticPatterns = append([]string{}, ei.TacticPatterns...)
	out.OrganizationalClues = append([]string{}, ei.OrganizationalClues...)
	out.ImpersonationClaims = append([]string{}, ei.ImpersonationClaims...)
	if ei.ClaimedIdentity != nil {
		id := *ei.ClaimedIdentity
		out.ClaimedIdentity = &id
	}
	return out
}

// Session is the per-conversation state. All mutation happens under the
// session store's per-session lock.
type Session struct {
	SessionID    string                `json:"sessionId"`
	TurnCount    int                   `json:"turnCount"`
	History      []Message             `json:"history"`
	Intelligence ExtractedIntelligence `json:"intelligence"`
	Confidence   float64               `json:"confidence"`
	Reported     bool                  `json:"reported"`
	Metadata     ChannelMetadata       `json:"metadata"`
	CreatedAt    time.Time             `json:"createdAt"`
	LastSeenAt   time.Time             `json:"lastSeenAt"`
}

// NewSession creates a fresh session in the pending state.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID:    id,
		History:      []Message{},
		Intelligence: NewExtractedIntelligence(),
		CreatedAt:    now,
		LastSeenAt:   now,
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.History = append([]Message{}, s.History...)
	out.Intelligence = s.Intelligence.Clone()
	return &out
}

// ScammerMessages returns the texts sent by the counterpart, in order.
func (s *Session) ScammerMessages() []string {
	var msgs []string
	for _, m := range s.History {
		if m.Sender == SenderScammer {
			msgs = append(msgs, m.Text)
		}
	}
	return msgs
}
