package extension

import (
	"log/slog"
	"time"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/store"
)

// ExtOption configures the gatekeeper Forge extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.authOpts = append(e.authOpts, gatekeeper.WithStore(s))
	}
}

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithAuthorizerOptions adds authorizer-level options.
func WithAuthorizerOptions(opts ...gatekeeper.Option) ExtOption {
	return func(e *Extension) {
		e.authOpts = append(e.authOpts, opts...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableRoutes disables the registration of HTTP routes.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrate disables auto-migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}

// WithCacheTTL sets the time-to-live for cached role permission sets.
func WithCacheTTL(ttl time.Duration) ExtOption {
	return func(e *Extension) {
		e.config.CacheTTL = ttl
	}
}

// WithCacheMaxSize caps how many role entries the cache holds.
func WithCacheMaxSize(n int) ExtOption {
	return func(e *Extension) {
		e.config.CacheMaxSize = n
	}
}

// WithSeedDefaults seeds the default catalog and roles on start.
func WithSeedDefaults() ExtOption {
	return func(e *Extension) {
		e.config.SeedDefaults = true
	}
}
