package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestMutateCreatesSessionOnce(t *testing.T) {
	store := NewMemoryStore(testLogger())

	store.Mutate("sess-1", func(sess *models.Session) {
		assert.Equal(t, "sess-1", sess.SessionID)
		sess.TurnCount = 1
	})
	store.Mutate("sess-1", func(sess *models.Session) {
		assert.Equal(t, 1, sess.TurnCount)
	})

	assert.Equal(t, 1, store.Len())
}

func TestSnapshotUnknownSession(t *testing.T) {
	store := NewMemoryStore(testLogger())

	_, ok := store.Snapshot("nope")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSnapshotIsIsolatedCopy(t *testing.T) {
	store := NewMemoryStore(testLogger())

	store.Mutate("sess-1", func(sess *models.Session) {
		sess.Intelligence.UPIIDs = append(sess.Intelligence.UPIIDs, "a@b")
	})

	snap, ok := store.Snapshot("sess-1")
	require.True(t, ok)
	snap.Intelligence.UPIIDs[0] = "mutated"
	snap.TurnCount = 99

	fresh, ok := store.Snapshot("sess-1")
	require.True(t, ok)
	assert.Equal(t, []string{"a@b"}, fresh.Intelligence.UPIIDs)
	assert.Equal(t, 0, fresh.TurnCount)
}

func TestStatsAggregation(t *testing.T) {
	store := NewMemoryStore(testLogger())

	store.Mutate("scam", func(sess *models.Session) {
		sess.TurnCount = 5
		sess.Confidence = 0.9
		sess.Reported = true
		sess.Intelligence.UPIIDs = []string{"a@b"}
		sess.Intelligence.BankAccounts = []string{"123456789012"}
	})
	store.Mutate("benign", func(sess *models.Session) {
		sess.TurnCount = 2
		sess.Confidence = 0.1
	})

	stats := store.Stats(0.3)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.ScamSessions)
	assert.Equal(t, 1, stats.ReportedSessions)
	assert.Equal(t, 7, stats.TotalTurns)
	assert.Equal(t, 1, stats.UPIIDs)
	assert.Equal(t, 1, stats.BankAccounts)
}

func TestConcurrentMutationsSameSession(t *testing.T) {
	store := NewMemoryStore(testLogger())

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			store.Mutate("sess-1", func(sess *models.Session) {
				sess.TurnCount++
			})
		}()
	}
	wg.Wait()

	snap, ok := store.Snapshot("sess-1")
	require.True(t, ok)
	assert.Equal(t, workers, snap.TurnCount)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentCreateDistinctSessions(t *testing.T) {
	store := NewMemoryStore(testLogger())

	const sessions = 20
	var wg sync.WaitGroup
	wg.Add(sessions)
	for i := 0; i < sessions; i++ {
		go func(n int) {
			defer wg.Done()
			store.Mutate(fmt.Sprintf("sess-%d", n), func(sess *models.Session) {
				sess.TurnCount = 1
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, sessions, store.Len())
	assert.Equal(t, sessions, store.Stats(0.5).TotalTurns)
}
