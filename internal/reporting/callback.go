package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// Reporter delivers a finalized scam report to an external system. Report
// returns whether delivery succeeded; the caller never retries through it.
type Reporter interface {
	Report(ctx context.Context, report *models.ScamReport) bool
}

// CallbackClient posts scam reports to a configured HTTP endpoint.
type CallbackClient struct {
	url    string
	apiKey string
	client *http.Client
	logger *logger.Logger
}

// NewCallbackClient creates a reporter for the configured callback endpoint.
func NewCallbackClient(cfg config.CallbackConfig, log *logger.Logger) *CallbackClient {
	return &CallbackClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log.WithComponent("callback"),
	}
}

// Report implements Reporter. A missing report ID is filled in before posting.
func (c *CallbackClient) Report(ctx context.Context, report *models.ScamReport) bool {
	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}

	log := c.logger.WithSession(report.SessionID)

	body, err := json.Marshal(report)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal scam report")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Msg("failed to build callback request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", c.url).Msg("callback request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("url", c.url).
			Msg("callback rejected scam report")
		return false
	}

	log.Info().
		Str("report_id", report.ReportID).
		Int("messages", report.TotalMessagesExchanged).
		Msg("scam report delivered")
	return true
}

// LogReporter records reports locally when no callback endpoint is
// configured. Delivery always "succeeds".
type LogReporter struct {
	logger *logger.Logger
}

// NewLogReporter creates a log-only reporter.
func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{logger: log.WithComponent("callback")}
}

// Report implements Reporter.
func (r *LogReporter) Report(_ context.Context, report *models.ScamReport) bool {
	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}
	r.logger.Info().
		Str("session_id", report.SessionID).
		Str("report_id", report.ReportID).
		Bool("scam_detected", report.ScamDetected).
		Msg("scam report (no callback configured)")
	return true
}
