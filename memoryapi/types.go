// Package memoryapi defines the narrow client surface this plugin needs
// from the memory backend, a concrete HTTP implementation, and a poller for
// asynchronous ingestion jobs.
//
// The backend exposes far more than this; the plugin deliberately models
// only the operations it calls so fakes stay small and the dependency stays
// replaceable.
package memoryapi

import (
	"context"
	"time"
)

// Memory is a read-only projection of one stored memory item.
type Memory struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Type         string    `json:"type,omitempty"`
	ContainerTag string    `json:"containerTag,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// Profile is the backend's narrative view of a user: a summary plus a list
// of stable traits and preferences. Read-only.
type Profile struct {
	Summary     string   `json:"summary"`
	Preferences []string `json:"preferences,omitempty"`
}

// ProfileOptions tunes profile computation.
type ProfileOptions struct {
	// IncludePreferences asks the backend to extract the trait list.
	IncludePreferences bool `json:"includePreferences,omitempty"`
}

// DocumentOptions tunes document creation.
type DocumentOptions struct {
	// Filename labels an uploaded document; optional for raw content.
	Filename string `json:"filename,omitempty"`
}

// ConversationMessage is one turn of a conversation submitted for ingestion.
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// IngestionStatus is the lifecycle state of an asynchronous ingestion job.
type IngestionStatus string

const (
	StatusPending    IngestionStatus = "pending"
	StatusProcessing IngestionStatus = "processing"
	StatusCompleted  IngestionStatus = "completed"
	StatusFailed     IngestionStatus = "failed"
)

// Terminal reports whether the job will make no further progress.
func (s IngestionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IngestionJob tracks one asynchronous ingestion.
type IngestionJob struct {
	DocumentID  string          `json:"documentId"`
	IngestionID string          `json:"ingestionId"`
	Status      IngestionStatus `json:"status"`
}

// SearchMode selects the backend's retrieval strategy.
type SearchMode string

const (
	SearchModeFast SearchMode = "fast"
	SearchModeDeep SearchMode = "deep"
)

// Client is the backend surface consumed by the plugin. Implementations
// must be safe for concurrent use.
type Client interface {
	// CreateMemory stores one memory under the given container tag.
	CreateMemory(ctx context.Context, content, tag, memType string) (*Memory, error)

	// ListMemories returns up to limit memories for a container tag,
	// newest first.
	ListMemories(ctx context.Context, tag string, limit int) ([]Memory, error)

	// ForgetMemory permanently deletes a memory by ID.
	ForgetMemory(ctx context.Context, id string) error

	// Search retrieves memories matching query across the given tags.
	Search(ctx context.Context, query string, tags []string, limit int, mode SearchMode) ([]Memory, error)

	// ComputeProfile builds the narrative profile for a container tag.
	ComputeProfile(ctx context.Context, tag string, opts ProfileOptions) (*Profile, error)

	// CreateDocument submits a document for asynchronous ingestion.
	CreateDocument(ctx context.Context, content, tag string, opts DocumentOptions) (*IngestionJob, error)

	// GetIngestionStatus fetches the current state of an ingestion job.
	GetIngestionStatus(ctx context.Context, ingestionID string) (*IngestionJob, error)

	// IngestConversation submits conversation turns for storage under the
	// given tag, attributed to a session.
	IngestConversation(ctx context.Context, messages []ConversationMessage, tag, sessionID, memType string) error
}
