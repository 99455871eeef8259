package membridge

// Version is the current membridge version.
const Version = "0.3.0"

// Scope selects which container tag an operation applies to.
type Scope string

const (
	// ScopeUser targets memories shared across all projects of one account.
	ScopeUser Scope = "user"

	// ScopeProject targets memories of the current project directory.
	ScopeProject Scope = "project"
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// Memory type classifications understood by the backend.
const (
	// TypeFact marks a discrete, user-stated memory.
	TypeFact = "fact"

	// TypeEpisode marks a conversation-summary memory produced by
	// compaction ingestion.
	TypeEpisode = "episode"
)

// Retrieval defaults for the session-start injection path.
const (
	// DefaultMemoryLimit caps how many memories are fetched per scope.
	DefaultMemoryLimit = 10

	// DefaultInjectionCacheSize bounds the injected-session set. Old
	// entries are evicted LRU; a very long-lived host could in principle
	// re-inject into an evicted session, which is harmless.
	DefaultInjectionCacheSize = 4096
)
