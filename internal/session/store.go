package session

import (
	"sync"
	"time"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

// Store holds per-conversation state. Mutations for one session are
// serialized; distinct sessions never contend with each other.
type Store interface {
	// Mutate runs fn with exclusive access to the session, creating it on
	// first sight.
	Mutate(id string, fn func(*models.Session))
	// Snapshot returns a deep copy of the session, or false if unknown.
	Snapshot(id string) (*models.Session, bool)
	// Stats aggregates across all sessions. Sessions with confidence above
	// scamThreshold count as scams.
	Stats(scamThreshold float64) Stats
	// Len returns the number of tracked sessions.
	Len() int
}

// Stats is the aggregate view over all sessions.
type Stats struct {
	TotalSessions    int `json:"totalSessions"`
	ScamSessions     int `json:"scamSessions"`
	ReportedSessions int `json:"reportedSessions"`
	TotalTurns       int `json:"totalTurns"`
	BankAccounts     int `json:"bankAccounts"`
	UPIIDs           int `json:"upiIds"`
	PhishingLinks    int `json:"phishingLinks"`
	PhoneNumbers     int `json:"phoneNumbers"`
}

type entry struct {
	mu   sync.Mutex
	sess *models.Session
}

// MemoryStore is the in-memory Store implementation. The registry map is
// guarded by an RWMutex; each session carries its own mutex so a slow turn in
// one conversation doesn't block others.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		logger:  log.WithComponent("session-store"),
	}
}

func (s *MemoryStore) get(id string) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e
	}
	e = &entry{sess: models.NewSession(id)}
	s.entries[id] = e
	s.logger.Debug().Str("session_id", id).Msg("session created")
	return e
}

// Mutate implements Store.
func (s *MemoryStore) Mutate(id string, fn func(*models.Session)) {
	e := s.get(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.sess)
	e.sess.LastSeenAt = time.Now().UTC()
}

// Snapshot implements Store.
func (s *MemoryStore) Snapshot(id string) (*models.Session, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone(), true
}

// Stats implements Store.
func (s *MemoryStore) Stats(scamThreshold float64) Stats {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	stats := Stats{TotalSessions: len(entries)}
	for _, e := range entries {
		e.mu.Lock()
		sess := e.sess
		if sess.Confidence > scamThreshold {
			stats.ScamSessions++
		}
		if sess.Reported {
			stats.ReportedSessions++
		}
		stats.TotalTurns += sess.TurnCount
		stats.BankAccounts += len(sess.Intelligence.BankAccounts)
		stats.UPIIDs += len(sess.Intelligence.UPIIDs)
		stats.PhishingLinks += len(sess.Intelligence.PhishingLinks)
		stats.PhoneNumbers += len(sess.Intelligence.PhoneNumbers)
		e.mu.Unlock()
	}

	return stats
}

// Len implements Store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
