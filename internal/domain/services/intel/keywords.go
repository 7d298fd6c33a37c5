package intel

// keywordEntry is one suspicious vocabulary item. Matching is substring-based
// on lowercased text, so "urgent" also catches "urgently".
type keywordEntry struct {
	Category string
	Keyword  string
	Weight   float64
}

// suspiciousVocabulary is the fixed keyword table. Weights feed the session
// confidence score the first time a keyword is seen.
var suspiciousVocabulary = []keywordEntry{
	// urgency
	{"urgency", "urgent", 0.3},
	{"urgency", "immediately", 0.3},
	{"urgency", "right now", 0.3},
	{"urgency", "asap", 0.3},
	{"urgency", "today only", 0.3},
	{"urgency", "within 24 hours", 0.3},

	// threat
	{"threat", "blocked", 0.3},
	{"threat", "locked", 0.3},
	{"threat", "suspended", 0.4},
	{"threat", "suspend", 0.4},
	{"threat", "frozen", 0.3},
	{"threat", "freeze", 0.3},
	{"threat", "legal", 0.3},
	{"threat", "court", 0.4},
	{"threat", "arrest", 0.4},
	{"threat", "police", 0.3},

	// action
	{"action", "verify", 0.3},
	{"action", "confirm", 0.2},
	{"action", "share", 0.2},
	{"action", "send", 0.1},
	{"action", "provide", 0.2},
	{"action", "click", 0.3},

	// account / credential
	{"credential", "account", 0.2},
	{"credential", "otp", 0.5},
	{"credential", "cvv", 0.5},
	{"credential", "kyc", 0.4},
	{"credential", "upi", 0.3},
	{"credential", "password", 0.4},
	{"credential", "pin", 0.3},
	{"credential", "aadhaar", 0.4},
	{"credential", "pan card", 0.3},

	// legitimacy
	{"legitimacy", "official", 0.2},
	{"legitimacy", "authorized", 0.2},
	{"legitimacy", "registered", 0.2},
	{"legitimacy", "government", 0.3},
	{"legitimacy", "reserve bank", 0.4},

	// pressure
	{"pressure", "last chance", 0.4},
	{"pressure", "final warning", 0.4},
	{"pressure", "act now", 0.4},
	{"pressure", "expires", 0.3},
	{"pressure", "don't delay", 0.3},

	// lure
	{"lure", "lottery", 0.5},
	{"lure", "prize", 0.5},
	{"lure", "congratulations", 0.4},
	{"lure", "win", 0.4},
	{"lure", "refund", 0.4},
	{"lure", "tax", 0.3},
}

// KeywordWeight returns the confidence contribution for a matched keyword.
func KeywordWeight(keyword string) float64 {
	for _, entry := range suspiciousVocabulary {
		if entry.Keyword == keyword {
			return entry.Weight
		}
	}
	return 0
}

// KeywordCategories returns the vocabulary grouped by category, for the
// patterns endpoint.
func KeywordCategories() map[string][]string {
	out := make(map[string][]string)
	for _, entry := range suspiciousVocabulary {
		out[entry.Category] = append(out[entry.Category], entry.Keyword)
	}
	return out
}
