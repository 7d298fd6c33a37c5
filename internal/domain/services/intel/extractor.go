package intel

import (
	"regexp"
	"strings"
	"unicode"

	"honeypot-lab/pkg/logger"
)

// EntityExtractor pulls actionable intelligence out of a single message using
// deterministic patterns. It is stateless; callers merge results per session.
type EntityExtractor struct {
	logger             *logger.Logger
	defaultCountryCode string
}

// Entities is the per-message extraction result. Each slice is deduplicated
// within the message, in the order matched.
type Entities struct {
	BankAccounts []string
	UPIIDs       []string
	PhoneNumbers []string
	Links        []string
	Keywords     []string
}

var (
	// Explicit "account <number>" phrases. These claim their spans before any
	// bare digit-run matching.
	accountPhrasePattern = regexp.MustCompile(`(?i)\b(?:account|a/c)(?:\s+(?:number|no\.?))?[\s:.]*([0-9][0-9\- ]{7,24}[0-9])`)
	// Grouped forms like 1234-5678-9012-3456.
	accountGroupPattern = regexp.MustCompile(`\b\d{4}[- ]\d{4}[- ]\d{4}[- ]\d{4}\b`)
	// Bare digit runs. 10-digit runs are left to the phone extractor.
	accountBarePattern = regexp.MustCompile(`\b\d{9,18}\b`)

	upiHandlePattern = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9._-]{1,64}@[a-zA-Z][a-zA-Z0-9.]{1,63}\b`)
	upiPhrasePattern = regexp.MustCompile(`(?i)\b(?:upi\s+(?:id|vpa|address)|vpa)\b[\s:]+([a-zA-Z0-9._@-]+)`)

	phoneCCPattern   = regexp.MustCompile(`\+(\d{1,3})[-.\s]?(\d{10})\b`)
	phoneBarePattern = regexp.MustCompile(`\b\d{10}\b`)

	urlSchemePattern = regexp.MustCompile(`https?://[^\s<>"']+`)
	urlWWWPattern    = regexp.MustCompile(`\bwww\.[^\s<>"']+`)
	urlShortPattern  = regexp.MustCompile(`\b(?:bit\.ly|tinyurl\.com|t\.co|cutt\.ly|is\.gd|rb\.gy|tiny\.cc)/[^\s<>"']+`)
	urlVerbPattern   = regexp.MustCompile(`(?i)(?:visit|click(?:\s+on)?|go\s+to|open)\s+((?:[a-z0-9-]+\.)+[a-z]{2,}(?:/[^\s<>"']*)?)`)
)

// NewEntityExtractor creates a new entity extractor. Bare 10-digit phone
// numbers are canonicalized with defaultCountryCode.
func NewEntityExtractor(defaultCountryCode string, log *logger.Logger) *EntityExtractor {
	if defaultCountryCode == "" {
		defaultCountryCode = "91"
	}
	return &EntityExtractor{
		logger:             log.WithComponent("entity-extractor"),
		defaultCountryCode: defaultCountryCode,
	}
}

// Extract runs all pattern families over the message text. Absence of matches
// is a normal outcome, never an error.
func (e *EntityExtractor) Extract(text string) Entities {
	result := Entities{}

	accounts, claimed := e.extractBankAccounts(text)
	result.BankAccounts = accounts
	result.UPIIDs = e.extractUPIHandles(text)
	result.PhoneNumbers = e.extractPhones(text, claimed)
	result.Links = e.extractLinks(text)
	result.Keywords = e.extractKeywords(text)

	if n := len(result.BankAccounts) + len(result.UPIIDs) + len(result.PhoneNumbers) + len(result.Links); n > 0 {
		e.logger.Debug().
			Int("bank_accounts", len(result.BankAccounts)).
			Int("upi_ids", len(result.UPIIDs)).
			Int("phones", len(result.PhoneNumbers)).
			Int("links", len(result.Links)).
			Msg("entities extracted")
	}

	return result
}

// span is a half-open [start, end) byte range already claimed by an
// explicit-phrase match.
type span struct {
	start, end int
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// extractBankAccounts returns normalized account numbers plus the text spans
// claimed by explicit-phrase matches.
func (e *EntityExtractor) extractBankAccounts(text string) ([]string, []span) {
	var accounts []string
	var claimed []span
	seen := make(map[string]bool)

	add := func(raw string) {
		digits := digitsOnly(raw)
		if len(digits) < 9 || len(digits) > 18 {
			return
		}
		if seen[digits] {
			return
		}
		seen[digits] = true
		accounts = append(accounts, digits)
	}

	// Explicit phrases claim their spans first
	for _, m := range accountPhrasePattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		claimed = append(claimed, span{start, end})
		add(text[start:end])
	}

	for _, m := range accountGroupPattern.FindAllStringIndex(text, -1) {
		if overlaps(claimed, m[0], m[1]) {
			continue
		}
		add(text[m[0]:m[1]])
	}

	for _, m := range accountBarePattern.FindAllStringIndex(text, -1) {
		if overlaps(claimed, m[0], m[1]) {
			continue
		}
		// Exactly 10 digits without an account phrase reads as a phone number
		if m[1]-m[0] == 10 {
			continue
		}
		add(text[m[0]:m[1]])
	}

	return accounts, claimed
}

// extractUPIHandles finds payment handles of the form local@provider.
func (e *EntityExtractor) extractUPIHandles(text string) []string {
	var handles []string
	seen := make(map[string]bool)

	for _, match := range upiHandlePattern.FindAllString(text, -1) {
		handle := strings.ToLower(match)
		if seen[handle] {
			continue
		}
		seen[handle] = true
		handles = append(handles, handle)
	}

	for _, m := range upiPhrasePattern.FindAllStringSubmatch(text, -1) {
		handle := strings.ToLower(strings.TrimRight(m[1], ".,;:!?"))
		if !strings.Contains(handle, "@") || seen[handle] {
			continue
		}
		seen[handle] = true
		handles = append(handles, handle)
	}

	return handles
}

// extractPhones finds 10-digit numbers with an optional country-code prefix
// and canonicalizes them to +<cc><10 digits>, so 9876543210 and
// +91-9876543210 collapse to the same entry. Digit runs already claimed by an
// account phrase are skipped.
func (e *EntityExtractor) extractPhones(text string, claimed []span) []string {
	var phones []string
	seen := make(map[string]bool)
	var ccSpans []span

	for _, m := range phoneCCPattern.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(claimed, m[0], m[1]) {
			continue
		}
		ccSpans = append(ccSpans, span{m[0], m[1]})
		cc := text[m[2]:m[3]]
		number := text[m[4]:m[5]]
		normalized := "+" + cc + number
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		phones = append(phones, normalized)
	}

	for _, m := range phoneBarePattern.FindAllStringIndex(text, -1) {
		if overlaps(claimed, m[0], m[1]) || overlaps(ccSpans, m[0], m[1]) {
			continue
		}
		normalized := "+" + e.defaultCountryCode + text[m[0]:m[1]]
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		phones = append(phones, normalized)
	}

	return phones
}

// extractLinks finds URLs in scheme, www, shortener, and verb-introduced
// forms. The stored form always carries a scheme.
func (e *EntityExtractor) extractLinks(text string) []string {
	var links []string
	seen := make(map[string]bool)

	add := func(raw string) {
		link := strings.TrimRight(raw, ".,;:!?)\"'")
		if link == "" {
			return
		}
		if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
			link = "https://" + link
		}
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	}

	for _, match := range urlSchemePattern.FindAllString(text, -1) {
		add(match)
	}
	for _, match := range urlWWWPattern.FindAllString(text, -1) {
		add(match)
	}
	for _, match := range urlShortPattern.FindAllString(text, -1) {
		add(match)
	}
	for _, m := range urlVerbPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return links
}

// extractKeywords matches the suspicious vocabulary against the message. At
// most one hit per keyword per message.
func (e *EntityExtractor) extractKeywords(text string) []string {
	var keywords []string
	lower := strings.ToLower(text)
	seen := make(map[string]bool)

	for _, entry := range suspiciousVocabulary {
		if seen[entry.Keyword] {
			continue
		}
		if strings.Contains(lower, entry.Keyword) {
			seen[entry.Keyword] = true
			keywords = append(keywords, entry.Keyword)
		}
	}

	return keywords
}

// digitsOnly strips everything but digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
