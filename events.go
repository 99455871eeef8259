package membridge

import (
	"context"

	"github.com/membridge/membridge/hooks"
)

// Register attaches the plugin's handlers to a host-driven hook registry.
func (p *Plugin) Register(r *hooks.Registry) {
	r.OnSessionStart(p.InjectContext)
	r.OnCompactionStarted(p.CompactionStarted)
	r.OnMessageFinished(p.MessageFinished)
	r.OnSessionDeleted(p.SessionDeleted)
}

// CompactionStarted handles the host's compaction event. Best-effort; the
// returned error is always nil.
func (p *Plugin) CompactionStarted(ctx context.Context, sessionID string) error {
	if !p.Configured() {
		return nil
	}
	p.tracker.CompactionStarted(sessionID)
	return nil
}

// MessageFinished handles the host's message-finished event. Only a
// finished summary message advances the compaction state machine; all
// other messages are ignored.
func (p *Plugin) MessageFinished(ctx context.Context, ev hooks.MessageEvent) error {
	if !p.Configured() {
		return nil
	}
	if !ev.IsSummary || !ev.IsFinished {
		return nil
	}
	p.tracker.SummaryReady(ev.SessionID)
	return nil
}

// SessionDeleted handles the host's session-teardown event, dropping all
// in-memory state held for the session.
func (p *Plugin) SessionDeleted(ctx context.Context, sessionID string) error {
	p.tracker.SessionEnded(sessionID)
	p.injected.Remove(sessionID)
	return nil
}
