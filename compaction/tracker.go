// Package compaction tracks host-side conversation compactions per session
// and turns them into best-effort summary ingestions.
//
// The host reports a compaction and, later, the summary message it
// produced, as two separate events. The tracker bridges the pair, enforces
// a per-session cooldown so a burst of compactions cannot storm the
// backend, and garbage-collects session state when the host destroys a
// session.
package compaction

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/membridge/membridge/memoryapi"
)

// Default configuration values.
const (
	// DefaultCooldown is the minimum gap between automatic ingestions for
	// one session.
	DefaultCooldown = 30 * time.Second

	// DefaultIngestTimeout bounds one fire-and-forget ingestion call.
	DefaultIngestTimeout = 60 * time.Second
)

// EpisodeType classifies summary ingestions on the backend.
const EpisodeType = "episode"

// Ingestor is the single backend operation the tracker needs.
// *memoryapi.HTTPClient satisfies it.
type Ingestor interface {
	IngestConversation(ctx context.Context, messages []memoryapi.ConversationMessage, tag, sessionID, memType string) error
}

// Config holds tracker configuration.
type Config struct {
	// ProjectTag is the container tag summary ingestions are stored under.
	ProjectTag string

	// Cooldown overrides DefaultCooldown when positive.
	Cooldown time.Duration

	// IngestTimeout overrides DefaultIngestTimeout when positive.
	IngestTimeout time.Duration

	// SweepInterval enables the stale-session sweeper when positive.
	// Entries untouched for SessionTTL are dropped, covering hosts that
	// crash without reporting the session destroyed.
	SweepInterval time.Duration

	// SessionTTL is the idle age after which the sweeper drops an entry.
	// Only consulted when SweepInterval is positive; defaults to 24h.
	SessionTTL time.Duration
}

// sessionState is the tracked state for one session. Entries are created
// lazily on the first compaction event and removed on session end.
type sessionState struct {
	// lastCompactionAt is the time of the last ingested compaction.
	// Monotonically non-decreasing; zero until the first ingestion.
	lastCompactionAt time.Time

	// inProgress is set between a compaction event and its summary.
	inProgress bool

	// touchedAt is the last event time, used only by the sweeper.
	touchedAt time.Time
}

// Tracker is the per-session compaction state machine. Safe for concurrent
// use; all state is in-memory and scoped to one Tracker instance.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*sessionState

	cfg      Config
	ingestor Ingestor
	log      *slog.Logger

	// now is a clock seam for tests.
	now func() time.Time

	// inflight tracks detached ingestion goroutines for shutdown.
	inflight sync.WaitGroup

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// NewTracker returns a Tracker that submits summary ingestions through
// ingestor. If cfg.SweepInterval is positive a background sweeper starts
// immediately; stop it with Close.
func NewTracker(ingestor Ingestor, cfg Config, logger *slog.Logger) *Tracker {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.IngestTimeout <= 0 {
		cfg.IngestTimeout = DefaultIngestTimeout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		sessions:  make(map[string]*sessionState),
		cfg:       cfg,
		ingestor:  ingestor,
		log:       logger,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		go t.sweepLoop()
	}

	return t
}

// CompactionStarted records that the host compacted the session's
// conversation. The session entry is created if absent and marked as
// waiting for the summary message.
func (t *Tracker) CompactionStarted(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.sessions[sessionID]
	if st == nil {
		st = &sessionState{}
		t.sessions[sessionID] = st
	}
	st.inProgress = true
	st.touchedAt = t.now()

	t.log.Debug("compaction started", "session_id", sessionID)
}

// SummaryReady records that the summary message produced by a compaction
// finished. Without a matching compaction it is a no-op. Inside the
// cooldown the pending flag is consumed and ingestion suppressed.
// Otherwise exactly one fire-and-forget ingestion is spawned, tagged with
// the project container tag and the episode type; its failure is logged
// and discarded.
func (t *Tracker) SummaryReady(sessionID string) {
	now := t.now()

	t.mu.Lock()
	st := t.sessions[sessionID]
	if st == nil || !st.inProgress {
		// Summary without a matching compaction, or already consumed.
		t.mu.Unlock()
		return
	}
	st.inProgress = false
	st.touchedAt = now

	if !st.lastCompactionAt.IsZero() && now.Sub(st.lastCompactionAt) < t.cfg.Cooldown {
		t.mu.Unlock()
		t.log.Debug("compaction ingestion suppressed by cooldown", "session_id", sessionID)
		return
	}
	st.lastCompactionAt = now
	t.mu.Unlock()

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		t.ingest(sessionID)
	}()
}

// SessionEnded deletes the session's entry entirely. A reused session
// identifier starts from a clean slate, not from stale cooldown history.
func (t *Tracker) SessionEnded(sessionID string) {
	t.mu.Lock()
	delete(t.sessions, sessionID)
	t.mu.Unlock()
}

// Flush blocks until all spawned ingestions have finished. Primarily for
// shutdown and tests.
func (t *Tracker) Flush() {
	t.inflight.Wait()
}

// Close stops the sweeper and waits for in-flight ingestions.
func (t *Tracker) Close() {
	t.sweepOnce.Do(func() { close(t.stopSweep) })
	t.Flush()
}

// ingest performs one best-effort summary ingestion. The payload is a
// marker identifying the session; the backend resolves the actual summary
// content from the session's conversation.
func (t *Tracker) ingest(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.IngestTimeout)
	defer cancel()

	messages := []memoryapi.ConversationMessage{{
		Role:    "system",
		Content: fmt.Sprintf("Conversation compacted for session %s; ingest the latest summary.", sessionID),
	}}

	if err := t.ingestor.IngestConversation(ctx, messages, t.cfg.ProjectTag, sessionID, EpisodeType); err != nil {
		t.log.Warn("compaction ingestion failed",
			"session_id", sessionID,
			"error", err,
		)
		return
	}

	t.log.Debug("compaction summary ingested",
		"session_id", sessionID,
		"container_tag", t.cfg.ProjectTag,
	)
}

// sweepLoop periodically drops entries whose last event is older than the
// session TTL.
func (t *Tracker) sweepLoop() {
	ticker := time.NewTicker(t.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopSweep:
			return
		case <-ticker.C:
			t.sweep()
		}
	}
}

func (t *Tracker) sweep() {
	cutoff := t.now().Add(-t.cfg.SessionTTL)

	t.mu.Lock()
	defer t.mu.Unlock()
	for id, st := range t.sessions {
		if st.touchedAt.Before(cutoff) {
			delete(t.sessions, id)
			t.log.Debug("swept stale session state", "session_id", id)
		}
	}
}

// trackedSessions reports how many sessions currently hold state. Test
// helper; not part of the public contract.
func (t *Tracker) trackedSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
