package membridge

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/membridge/membridge/config"
	"github.com/membridge/membridge/memoryapi"
)

// Option is a functional option for configuring a Plugin.
type Option func(*internalConfig) error

// WithLogger sets the logger for all plugin components.
func WithLogger(logger *slog.Logger) Option {
	return func(c *internalConfig) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidConfig)
		}
		c.logger = logger
		return nil
	}
}

// WithBackend replaces the default HTTP backend client. Intended for tests
// and for hosts that already hold a client.
func WithBackend(client memoryapi.Client) Option {
	return func(c *internalConfig) error {
		if client == nil {
			return fmt.Errorf("%w: backend must not be nil", ErrInvalidConfig)
		}
		c.backend = client
		return nil
	}
}

// WithResolver replaces the default configuration resolver.
func WithResolver(r *config.Resolver) Option {
	return func(c *internalConfig) error {
		if r == nil {
			return fmt.Errorf("%w: resolver must not be nil", ErrInvalidConfig)
		}
		c.resolver = r
		return nil
	}
}

// WithCooldown overrides the compaction-ingestion cooldown.
func WithCooldown(d time.Duration) Option {
	return func(c *internalConfig) error {
		if d <= 0 {
			return fmt.Errorf("%w: cooldown must be positive", ErrInvalidConfig)
		}
		c.cooldown = d
		return nil
	}
}

// WithSessionSweep enables the stale-session sweeper with the given
// interval. Off by default.
func WithSessionSweep(interval time.Duration) Option {
	return func(c *internalConfig) error {
		if interval <= 0 {
			return fmt.Errorf("%w: sweep interval must be positive", ErrInvalidConfig)
		}
		c.sweepInterval = interval
		return nil
	}
}

// WithMemoryLimit caps how many memories are fetched per scope on the
// injection path.
func WithMemoryLimit(n int) Option {
	return func(c *internalConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: memory limit must be positive", ErrInvalidConfig)
		}
		c.memoryLimit = n
		return nil
	}
}

// WithInjectionCacheSize bounds the once-per-session injection set.
func WithInjectionCacheSize(n int) Option {
	return func(c *internalConfig) error {
		if n <= 0 {
			return fmt.Errorf("%w: injection cache size must be positive", ErrInvalidConfig)
		}
		c.injectionCacheSize = n
		return nil
	}
}
