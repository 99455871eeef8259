// Package hooks defines the host-facing event surface of the plugin.
//
// A host runtime registers handlers for the events it emits and triggers
// them through a Registry; the plugin registers its own handlers the same
// way, so hosts never depend on plugin internals.
package hooks

import (
	"context"
	"sync"
)

// Part is one ordered part of a prompt message. The session-start hook may
// prepend synthetic text parts to the slice it receives.
type Part struct {
	Type string
	Text string
}

// PartTypeText is the only part type the plugin produces.
const PartTypeText = "text"

// MessageEvent describes a finished message reported by the host.
type MessageEvent struct {
	SessionID  string
	Role       string
	IsSummary  bool
	IsFinished bool
}

// SessionStartHook runs when a session's first prompt is being assembled.
// Handlers may prepend parts; they must not reorder or remove existing ones.
type SessionStartHook func(ctx context.Context, sessionID, messageID string, parts *[]Part) error

// CompactionStartedHook runs when the host compacted a conversation.
type CompactionStartedHook func(ctx context.Context, sessionID string) error

// MessageFinishedHook runs when the host finishes writing a message.
type MessageFinishedHook func(ctx context.Context, ev MessageEvent) error

// SessionDeletedHook runs when the host destroys a session.
type SessionDeletedHook func(ctx context.Context, sessionID string) error

// Registry holds all registered hooks.
type Registry struct {
	mu                sync.RWMutex
	sessionStart      []SessionStartHook
	compactionStarted []CompactionStartedHook
	messageFinished   []MessageFinishedHook
	sessionDeleted    []SessionDeletedHook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// OnSessionStart registers a session-start hook.
func (r *Registry) OnSessionStart(hook SessionStartHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionStart = append(r.sessionStart, hook)
}

// OnCompactionStarted registers a compaction hook.
func (r *Registry) OnCompactionStarted(hook CompactionStartedHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compactionStarted = append(r.compactionStarted, hook)
}

// OnMessageFinished registers a message-finished hook.
func (r *Registry) OnMessageFinished(hook MessageFinishedHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messageFinished = append(r.messageFinished, hook)
}

// OnSessionDeleted registers a session-deleted hook.
func (r *Registry) OnSessionDeleted(hook SessionDeletedHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionDeleted = append(r.sessionDeleted, hook)
}

// TriggerSessionStart calls all registered session-start hooks in
// registration order. The first error stops the chain.
func (r *Registry) TriggerSessionStart(ctx context.Context, sessionID, messageID string, parts *[]Part) error {
	r.mu.RLock()
	hooks := make([]SessionStartHook, len(r.sessionStart))
	copy(hooks, r.sessionStart)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, sessionID, messageID, parts); err != nil {
			return err
		}
	}
	return nil
}

// TriggerCompactionStarted calls all registered compaction hooks.
func (r *Registry) TriggerCompactionStarted(ctx context.Context, sessionID string) error {
	r.mu.RLock()
	hooks := make([]CompactionStartedHook, len(r.compactionStarted))
	copy(hooks, r.compactionStarted)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}

// TriggerMessageFinished calls all registered message-finished hooks.
func (r *Registry) TriggerMessageFinished(ctx context.Context, ev MessageEvent) error {
	r.mu.RLock()
	hooks := make([]MessageFinishedHook, len(r.messageFinished))
	copy(hooks, r.messageFinished)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// TriggerSessionDeleted calls all registered session-deleted hooks.
func (r *Registry) TriggerSessionDeleted(ctx context.Context, sessionID string) error {
	r.mu.RLock()
	hooks := make([]SessionDeletedHook, len(r.sessionDeleted))
	copy(hooks, r.sessionDeleted)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, sessionID); err != nil {
			return err
		}
	}
	return nil
}
