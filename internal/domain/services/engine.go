package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"honeypot-lab/internal/config"
	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/domain/services/intel"
	"honeypot-lab/internal/reply"
	"honeypot-lab/internal/reporting"
	"honeypot-lab/internal/session"
	"honeypot-lab/internal/streaming"
	"honeypot-lab/pkg/logger"
)

var (
	// ErrMissingSessionID rejects turns without a session identifier.
	ErrMissingSessionID = errors.New("session id is required")
	// ErrEmptyMessage rejects turns with no message text.
	ErrEmptyMessage = errors.New("message text is required")
)

// Engine is the single mutation point for session intelligence. Each turn is
// processed under the session's lock: history append, extraction, merge,
// confidence update, classification, and the escalation decision all happen
// before any other turn for the same session can start.
type Engine struct {
	store      session.Store
	extractor  *intel.EntityExtractor
	tactics    *intel.TacticClassifier
	classifier *intel.ScamClassifier
	gate       *EscalationGate
	reporter   reporting.Reporter
	replies    reply.Generator
	events     *streaming.EventBus
	weights    config.ConfidenceWeights
	threshold  float64
	logger     *logger.Logger
}

// NewEngine wires the intelligence pipeline together. events may be nil.
func NewEngine(
	cfg config.EngineConfig,
	store session.Store,
	reporter reporting.Reporter,
	replies reply.Generator,
	events *streaming.EventBus,
	log *logger.Logger,
) *Engine {
	return &Engine{
		store:      store,
		extractor:  intel.NewEntityExtractor(cfg.DefaultCountryCode, log),
		tactics:    intel.NewTacticClassifier(log),
		classifier: intel.NewScamClassifier(log),
		gate:       NewEscalationGate(cfg.Escalation, log),
		reporter:   reporter,
		replies:    replies,
		events:     events,
		weights:    cfg.Weights,
		threshold:  cfg.DetectionThreshold,
		logger:     log.WithComponent("engine"),
	}
}

// ProcessTurn ingests one inbound message, updates the session, and returns
// the detection verdict plus the persona's reply. Identical repeated messages
// change nothing except the turn count.
func (e *Engine) ProcessTurn(ctx context.Context, req *models.TurnRequest) (*models.TurnResult, error) {
	if req == nil || req.SessionID == "" {
		return nil, ErrMissingSessionID
	}
	if strings.TrimSpace(req.Message.Text) == "" {
		return nil, ErrEmptyMessage
	}

	msg := req.Message
	if msg.Sender == "" {
		msg.Sender = models.SenderScammer
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	var (
		result  models.TurnResult
		report  *models.ScamReport
		reason  string
		created bool
	)

	e.store.Mutate(req.SessionID, func(sess *models.Session) {
		created = len(sess.History) == 0
		if created && req.Metadata != nil {
			sess.Metadata = *req.Metadata
		}

		sess.History = append(sess.History, msg)
		sess.TurnCount++

		if msg.Sender == models.SenderScammer {
			// Extraction and tactic classification are independent; run both
			// concurrently and merge under the session lock.
			var (
				entities intel.Entities
				tactics  intel.TacticResult
				wg       sync.WaitGroup
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				entities = e.extractor.Extract(msg.Text)
			}()
			go func() {
				defer wg.Done()
				tactics = e.tactics.Classify(msg.Text)
			}()
			wg.Wait()

			e.merge(sess, entities, tactics)

			// The first non-default classification sticks for the life of the
			// session; only the banking fallback can be upgraded by later
			// evidence.
			if t := sess.Intelligence.ScamType; t == models.ScamTypeUnknown || t == models.ScamTypeBanking {
				sess.Intelligence.ScamType = e.classifier.ClassifyType(sess)
			}
		}

		sess.Intelligence.SophisticationLevel = e.classifier.AssessSophistication(sess)

		// The PENDING -> REPORTED transition happens here, before dispatch,
		// so a concurrent turn can never fire a second report.
		if !sess.Reported {
			if ok, r := e.gate.ShouldEscalate(sess); ok {
				sess.Reported = true
				reason = r
				report = &models.ScamReport{
					SessionID:              sess.SessionID,
					ScamDetected:           sess.Confidence > e.threshold,
					TotalMessagesExchanged: sess.TurnCount,
					ExtractedIntelligence:  sess.Intelligence.Clone(),
					AgentNotes:             AgentNotes(sess),
				}
			}
		}

		result = models.TurnResult{
			SessionID:    sess.SessionID,
			TurnCount:    sess.TurnCount,
			ScamDetected: sess.Confidence > e.threshold,
			Confidence:   sess.Confidence,
			Intelligence: sess.Intelligence.Clone(),
			ShouldReport: report != nil,
		}
	})

	e.publishEvents(created, &result, reason)

	if report != nil {
		if delivered := e.reporter.Report(ctx, report); !delivered {
			// State stays REPORTED; there is no retry path.
			e.logger.Error().
				Str("session_id", req.SessionID).
				Str("reason", reason).
				Msg("scam report delivery failed")
		}
	}

	if msg.Sender == models.SenderScammer {
		result.Reply = e.generateReply(ctx, req.SessionID)
	}

	e.logger.Info().
		Str("session_id", req.SessionID).
		Int("turn", result.TurnCount).
		Bool("scam_detected", result.ScamDetected).
		Float64("confidence", result.Confidence).
		Bool("escalated", result.ShouldReport).
		Msg("turn processed")

	return &result, nil
}

// merge folds per-message findings into the session, adding confidence weight
// for newly seen items only and clamping the score at 1.0.
func (e *Engine) merge(sess *models.Session, entities intel.Entities, tactics intel.TacticResult) {
	ei := &sess.Intelligence

	for _, v := range entities.BankAccounts {
		if appendNew(&ei.BankAccounts, v) {
			sess.Confidence += e.weights.BankAccount
		}
	}
	for _, v := range entities.UPIIDs {
		if appendNew(&ei.UPIIDs, v) {
			sess.Confidence += e.weights.UPIID
		}
	}
	for _, v := range entities.Links {
		if appendNew(&ei.PhishingLinks, v) {
			sess.Confidence += e.weights.PhishingLink
		}
	}
	for _, v := range entities.PhoneNumbers {
		if appendNew(&ei.PhoneNumbers, v) {
			sess.Confidence += e.weights.PhoneNumber
		}
	}
	for _, kw := range entities.Keywords {
		if appendNew(&ei.SuspiciousKeywords, kw) {
			sess.Confidence += intel.KeywordWeight(kw)
		}
	}
	for _, t := range tactics.Tactics {
		if appendNew(&ei.TacticPatterns, t) {
			sess.Confidence += e.weights.TacticPattern
		}
	}
	for _, c := range tactics.Claims {
		if appendNew(&ei.ImpersonationClaims, c) {
			sess.Confidence += e.weights.ImpersonationClaim
		}
	}
	for _, c := range tactics.OrgClues {
		if appendNew(&ei.OrganizationalClues, c) {
			sess.Confidence += e.weights.OrganizationalClue
		}
	}

	if tactics.Identity != nil {
		if ei.ClaimedIdentity == nil {
			ei.ClaimedIdentity = &models.ClaimedIdentity{}
		}
		mergeIdentity(ei.ClaimedIdentity, tactics.Identity)
	}

	if sess.Confidence > 1.0 {
		sess.Confidence = 1.0
	}
}

// appendNew appends v if absent and reports whether it was added.
func appendNew(dst *[]string, v string) bool {
	for _, existing := range *dst {
		if existing == v {
			return false
		}
	}
	*dst = append(*dst, v)
	return true
}

// mergeIdentity fills empty fields only; earlier claims win.
func mergeIdentity(dst, src *models.ClaimedIdentity) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.EmployeeID == "" {
		dst.EmployeeID = src.EmployeeID
	}
	if dst.Branch == "" {
		dst.Branch = src.Branch
	}
	if dst.Title == "" {
		dst.Title = src.Title
	}
}

func (e *Engine) publishEvents(created bool, result *models.TurnResult, reason string) {
	if e.events == nil {
		return
	}

	base := streaming.SessionEvent{
		SessionID:    result.SessionID,
		TurnCount:    result.TurnCount,
		Confidence:   result.Confidence,
		ScamType:     result.Intelligence.ScamType,
		ScamDetected: result.ScamDetected,
	}

	if created {
		ev := base
		ev.Type = streaming.EventTypeSessionCreated
		e.publish(&ev)
	}

	ev := base
	ev.Type = streaming.EventTypeIntelligenceUpdated
	e.publish(&ev)

	if result.ShouldReport {
		ev := base
		ev.Type = streaming.EventTypeSessionReported
		ev.Reason = reason
		e.publish(&ev)
	}
}

func (e *Engine) publish(ev *streaming.SessionEvent) {
	ev.ID = uuid.New().String()
	ev.Timestamp = time.Now().UTC()
	e.events.Publish(ev)
}

// generateReply asks the persona generator for the next message and appends
// it to the session history. Generation failures fall back to a fixed probe;
// the turn itself never fails here.
func (e *Engine) generateReply(ctx context.Context, sessionID string) string {
	snapshot, ok := e.store.Snapshot(sessionID)
	if !ok {
		return reply.FallbackReply
	}

	text, err := e.replies.Generate(ctx, snapshot)
	if err != nil || text == "" {
		e.logger.Warn().Err(err).Str("session_id", sessionID).Msg("reply generation failed, using fallback")
		text = reply.FallbackReply
	}

	e.store.Mutate(sessionID, func(sess *models.Session) {
		sess.History = append(sess.History, models.Message{
			Sender:    models.SenderAgent,
			Text:      text,
			Timestamp: time.Now().UnixMilli(),
		})
	})

	return text
}

// SnapshotIntelligence returns a read-only view of a session's accumulated
// intelligence.
func (e *Engine) SnapshotIntelligence(sessionID string) (*models.Session, bool) {
	return e.store.Snapshot(sessionID)
}

// DetectionThreshold exposes the configured scam threshold for the stats
// surface.
func (e *Engine) DetectionThreshold() float64 {
	return e.threshold
}
