package membridge

import (
	"context"
	"fmt"
	"time"

	"github.com/membridge/membridge/memoryapi"
	"github.com/membridge/membridge/privacy"
)

// Defaults for user-invoked operations.
const (
	// DefaultSearchLimit caps search results when the caller passes 0.
	DefaultSearchLimit = 10

	// DefaultDocumentWait bounds how long StoreDocument waits for the
	// ingestion job before reporting it as still processing.
	DefaultDocumentWait = 2 * time.Minute

	documentPollInterval = 2 * time.Second
)

// gate rejects user-invoked operations while the plugin is unconfigured.
// Background paths never call it; they degrade silently instead.
func (p *Plugin) gate(op string) error {
	if !p.Configured() {
		return NewPluginError(op, ErrNotConfigured)
	}
	return nil
}

// StoreMemory strips private spans from content and stores the remainder
// under the given scope's container tag. Content that is entirely private
// is rejected, not stored empty.
func (p *Plugin) StoreMemory(ctx context.Context, content string, scope Scope) (*memoryapi.Memory, error) {
	const op = "StoreMemory"
	if err := p.gate(op); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content", ErrMissingArgument)
	}

	stripped := privacy.Strip(content)
	if stripped == "" {
		return nil, ErrFullyPrivate
	}

	tag, err := p.tagFor(scope)
	if err != nil {
		return nil, err
	}

	memory, err := p.backend.CreateMemory(ctx, stripped, tag, TypeFact)
	if err != nil {
		return nil, NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}
	return memory, nil
}

// SearchMemories retrieves memories matching query across both the user
// and project tags. A zero limit means DefaultSearchLimit.
func (p *Plugin) SearchMemories(ctx context.Context, query string, limit int) ([]memoryapi.Memory, error) {
	const op = "SearchMemories"
	if err := p.gate(op); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, fmt.Errorf("%w: query", ErrMissingArgument)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	tags := []string{p.tags.User, p.tags.Project}
	results, err := p.backend.Search(ctx, query, tags, limit, memoryapi.SearchModeFast)
	if err != nil {
		return nil, NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}
	return results, nil
}

// ListMemories returns up to limit memories for one scope, newest first.
// A zero limit means DefaultSearchLimit.
func (p *Plugin) ListMemories(ctx context.Context, scope Scope, limit int) ([]memoryapi.Memory, error) {
	const op = "ListMemories"
	if err := p.gate(op); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	tag, err := p.tagFor(scope)
	if err != nil {
		return nil, err
	}

	memories, err := p.backend.ListMemories(ctx, tag, limit)
	if err != nil {
		return nil, NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}
	return memories, nil
}

// ForgetMemory permanently deletes a memory by ID.
func (p *Plugin) ForgetMemory(ctx context.Context, id string) error {
	const op = "ForgetMemory"
	if err := p.gate(op); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: id", ErrMissingArgument)
	}

	if err := p.backend.ForgetMemory(ctx, id); err != nil {
		return NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}
	return nil
}

// Profile computes the narrative profile for the user's container tag.
func (p *Plugin) Profile(ctx context.Context) (*memoryapi.Profile, error) {
	const op = "Profile"
	if err := p.gate(op); err != nil {
		return nil, err
	}

	profile, err := p.backend.ComputeProfile(ctx, p.tags.User, memoryapi.ProfileOptions{IncludePreferences: true})
	if err != nil {
		return nil, NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}
	return profile, nil
}

// StoreDocument strips private spans from content, submits the remainder
// as a document under the given scope, and waits for the asynchronous
// ingestion to settle. A StatusProcessing result means the job is still
// pending on the backend, not that it failed.
func (p *Plugin) StoreDocument(ctx context.Context, content string, scope Scope) (memoryapi.IngestionStatus, error) {
	const op = "StoreDocument"
	if err := p.gate(op); err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("%w: content", ErrMissingArgument)
	}

	stripped := privacy.Strip(content)
	if stripped == "" {
		return "", ErrFullyPrivate
	}

	tag, err := p.tagFor(scope)
	if err != nil {
		return "", err
	}

	job, err := p.backend.CreateDocument(ctx, stripped, tag, memoryapi.DocumentOptions{})
	if err != nil {
		return "", NewPluginError(op, fmt.Errorf("%w: %v", ErrBackend, err))
	}

	return p.poller.AwaitTerminal(ctx, job.IngestionID, DefaultDocumentWait, documentPollInterval), nil
}
