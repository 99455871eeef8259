package membridge

import (
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/membridge/membridge/compaction"
	"github.com/membridge/membridge/config"
	"github.com/membridge/membridge/containertag"
	"github.com/membridge/membridge/memoryapi"
)

// Config holds the required identity inputs for a plugin instance.
// Everything else (API key, endpoint, tag overrides) comes from the layered
// configuration sources resolved at construction time.
//
// Example:
//
//	plugin, _ := membridge.New(membridge.Config{
//	    ProjectDir: "/home/alice/src/api-server",
//	    Username:   "alice",
//	})
type Config struct {
	// ProjectDir is the host project's working directory. It selects the
	// project-local config file and feeds project-tag derivation (required).
	ProjectDir string

	// Username is the account name feeding user-tag derivation. Empty
	// falls back to a fixed literal.
	Username string
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("%w: ProjectDir is required", ErrInvalidConfig)
	}
	return nil
}

// internalConfig holds the full plugin configuration including optional
// parameters set via Options.
type internalConfig struct {
	projectDir string
	username   string

	resolver           *config.Resolver
	backend            memoryapi.Client
	logger             *slog.Logger
	cooldown           time.Duration
	sweepInterval      time.Duration
	memoryLimit        int
	injectionCacheSize int
}

func newInternalConfig(cfg Config) *internalConfig {
	return &internalConfig{
		projectDir:         cfg.ProjectDir,
		username:           cfg.Username,
		resolver:           config.NewResolver(),
		logger:             slog.Default(),
		memoryLimit:        DefaultMemoryLimit,
		injectionCacheSize: DefaultInjectionCacheSize,
	}
}

// Plugin is one running instance of the session memory plugin. All session
// tracking lives in memory on the instance and is safe for concurrent use.
type Plugin struct {
	resolved config.Configuration
	tags     containertag.Tags
	backend  memoryapi.Client
	tracker  *compaction.Tracker
	poller   *memoryapi.Poller
	log      *slog.Logger

	memoryLimit int

	// injected is the once-per-session injection set. ContainsOrAdd gives
	// the atomic check-then-mark the concurrent injection path needs.
	injected *lru.Cache[string, struct{}]
}

// New creates a plugin: it resolves the layered configuration, derives the
// container tags, and wires the compaction tracker. New succeeds even when
// no API key is configured; the plugin then behaves as a no-op on the
// best-effort paths and rejects user-invoked operations.
func New(cfg Config, opts ...Option) (*Plugin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ic := newInternalConfig(cfg)
	for _, opt := range opts {
		if err := opt(ic); err != nil {
			return nil, err
		}
	}

	resolved := ic.resolver.Resolve(ic.projectDir)

	tags := containertag.Derive(ic.username, ic.projectDir, containertag.Overrides{
		User:    resolved.ContainerTagUser,
		Project: resolved.ContainerTagProject,
	})

	backend := ic.backend
	if backend == nil {
		backend = memoryapi.NewHTTPClient(resolved.BaseURL, resolved.APIKey)
	}

	injected, err := lru.New[string, struct{}](ic.injectionCacheSize)
	if err != nil {
		return nil, NewPluginError("New", err)
	}

	p := &Plugin{
		resolved:    resolved,
		tags:        tags,
		backend:     backend,
		poller:      memoryapi.NewPoller(backend),
		log:         ic.logger,
		memoryLimit: ic.memoryLimit,
		injected:    injected,
	}

	p.tracker = compaction.NewTracker(backend, compaction.Config{
		ProjectTag:    tags.Project,
		Cooldown:      ic.cooldown,
		SweepInterval: ic.sweepInterval,
	}, ic.logger)

	p.log.Debug("membridge initialized",
		"configured", resolved.IsConfigured(),
		"user_tag", tags.User,
		"project_tag", tags.Project,
	)

	return p, nil
}

// Configured reports whether an API key was resolved from any source.
func (p *Plugin) Configured() bool {
	return p.resolved.IsConfigured()
}

// Tags returns the derived container tags.
func (p *Plugin) Tags() containertag.Tags {
	return p.tags
}

// Close stops background work and waits for in-flight ingestions.
func (p *Plugin) Close() {
	p.tracker.Close()
}

// tagFor maps a scope to its container tag.
func (p *Plugin) tagFor(scope Scope) (string, error) {
	switch scope {
	case ScopeUser:
		return p.tags.User, nil
	case ScopeProject:
		return p.tags.Project, nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidConfig, scope)
	}
}
