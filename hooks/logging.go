package hooks

import (
	"context"
	"log/slog"
)

// LoggingHooks provides built-in logging hooks for observability. Register
// them alongside the plugin's own handlers to trace host events.
type LoggingHooks struct {
	logger *slog.Logger
}

// NewLoggingHooks creates logging hooks with the provided logger.
func NewLoggingHooks(logger *slog.Logger) *LoggingHooks {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingHooks{logger: logger}
}

// Register attaches all logging hooks to the registry.
func (h *LoggingHooks) Register(r *Registry) {
	r.OnSessionStart(h.SessionStart)
	r.OnCompactionStarted(h.CompactionStarted)
	r.OnMessageFinished(h.MessageFinished)
	r.OnSessionDeleted(h.SessionDeleted)
}

// SessionStart logs prompt assembly for a session.
func (h *LoggingHooks) SessionStart(ctx context.Context, sessionID, messageID string, parts *[]Part) error {
	h.logger.Debug("session start",
		"session_id", sessionID,
		"message_id", messageID,
		"parts", len(*parts),
	)
	return nil
}

// CompactionStarted logs a host compaction.
func (h *LoggingHooks) CompactionStarted(ctx context.Context, sessionID string) error {
	h.logger.Debug("compaction started", "session_id", sessionID)
	return nil
}

// MessageFinished logs a finished message.
func (h *LoggingHooks) MessageFinished(ctx context.Context, ev MessageEvent) error {
	h.logger.Debug("message finished",
		"session_id", ev.SessionID,
		"role", ev.Role,
		"is_summary", ev.IsSummary,
	)
	return nil
}

// SessionDeleted logs session destruction.
func (h *LoggingHooks) SessionDeleted(ctx context.Context, sessionID string) error {
	h.logger.Debug("session deleted", "session_id", sessionID)
	return nil
}
