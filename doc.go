// Package membridge attaches persistent external memory to a coding-agent
// host runtime.
//
// The plugin resolves its configuration from environment variables and
// JSONC config files, derives deterministic container tags partitioning
// stored memories per user and per project, injects prior context into the
// first prompt of each session, and forwards conversation summaries to a
// remote memory backend whenever the host compacts a conversation.
//
// # Quick Start
//
// Create a plugin for the current project and register it with a host:
//
//	plugin, err := membridge.New(membridge.Config{
//	    ProjectDir: "/home/alice/src/api-server",
//	    Username:   "alice",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plugin.Close()
//
//	registry := hooks.NewRegistry()
//	plugin.Register(registry)
//
// The host drives the registry: TriggerSessionStart while assembling the
// first prompt of a session, TriggerCompactionStarted and
// TriggerMessageFinished as the conversation evolves, and
// TriggerSessionDeleted on teardown.
//
// # Error Semantics
//
// Everything on the session-start and compaction paths is best-effort: a
// missing API key, an unreachable backend, or a malformed config file
// degrades to "no memory" and never fails the surrounding host operation.
// Only the directly user-invoked operations (StoreMemory, SearchMemories,
// ListMemories, ForgetMemory, Profile, StoreDocument) surface errors.
//
// All session tracking is in-memory and scoped to one Plugin instance;
// nothing persists across process restarts.
package membridge
