package models

// TurnRequest is one inbound conversation message to process.
type TurnRequest struct {
	SessionID string           `json:"sessionId"`
	Message   Message          `json:"message"`
	Metadata  *ChannelMetadata `json:"metadata,omitempty"`
}

// TurnResult is what processing a turn yields for the caller.
type TurnResult struct {
	SessionID    string                `json:"sessionId"`
	TurnCount    int                   `json:"turnCount"`
	ScamDetected bool                  `json:"scamDetected"`
	Confidence   float64               `json:"confidence"`
	Intelligence ExtractedIntelligence `json:"intelligence"`
	ShouldReport bool                  `json:"shouldReport"`
	Reply        string                `json:"reply"`
}

// ScamReport is the payload posted to the external reporting endpoint when a
// session escalates.
type ScamReport struct {
	ReportID               string                `json:"reportId"`
	SessionID              string                `json:"sessionId"`
	ScamDetected           bool                  `json:"scamDetected"`
	TotalMessagesExchanged int                   `json:"totalMessagesExchanged"`
	ExtractedIntelligence  ExtractedIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                `json:"agentNotes"`
}
