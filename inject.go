package membridge

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/membridge/membridge/contextblock"
	"github.com/membridge/membridge/hooks"
	"github.com/membridge/membridge/memoryapi"
)

// InjectContext is the session-start hook. It prepends at most one
// synthetic text part carrying the user's profile and relevant memories to
// the prompt parts, once per session across all calls and callers.
//
// The whole path is best-effort: when the plugin is unconfigured, the
// backend is unreachable, or there is simply nothing to inject, the parts
// are left untouched and the host operation proceeds. InjectContext never
// returns a non-nil error; the signature matches hooks.SessionStartHook.
func (p *Plugin) InjectContext(ctx context.Context, sessionID, messageID string, parts *[]hooks.Part) error {
	if !p.Configured() {
		return nil
	}

	// Atomic check-then-mark: concurrent calls for the same session must
	// produce at most one injection, so the session is claimed before the
	// (slow) retrieval starts. ContainsOrAdd reports an existing claim.
	if existed, _ := p.injected.ContainsOrAdd(sessionID, struct{}{}); existed {
		return nil
	}

	block := p.buildContextBlock(ctx, sessionID)
	if block == "" {
		return nil
	}

	*parts = append([]hooks.Part{{Type: hooks.PartTypeText, Text: block}}, *parts...)

	p.log.Debug("context injected",
		"session_id", sessionID,
		"message_id", messageID,
		"bytes", len(block),
	)
	return nil
}

// buildContextBlock fetches profile, user memories, and project memories
// concurrently and formats them. Each retrieval failure degrades to empty
// data for that section; only the failure is logged.
func (p *Plugin) buildContextBlock(ctx context.Context, sessionID string) string {
	var (
		profile         *memoryapi.Profile
		userMemories    []memoryapi.Memory
		projectMemories []memoryapi.Memory
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := p.backend.ComputeProfile(gctx, p.tags.User, memoryapi.ProfileOptions{IncludePreferences: true})
		if err != nil {
			p.log.Debug("profile fetch failed", "session_id", sessionID, "error", err)
			return nil
		}
		profile = result
		return nil
	})

	g.Go(func() error {
		result, err := p.backend.ListMemories(gctx, p.tags.User, p.memoryLimit)
		if err != nil {
			p.log.Debug("user memory fetch failed", "session_id", sessionID, "error", err)
			return nil
		}
		userMemories = result
		return nil
	})

	g.Go(func() error {
		result, err := p.backend.ListMemories(gctx, p.tags.Project, p.memoryLimit)
		if err != nil {
			p.log.Debug("project memory fetch failed", "session_id", sessionID, "error", err)
			return nil
		}
		projectMemories = result
		return nil
	})

	// Goroutines above never return errors; Wait only synchronizes.
	_ = g.Wait()

	return contextblock.Format(profile, userMemories, projectMemories)
}
