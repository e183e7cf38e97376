// Package extension provides a Forge extension entry point for gatekeeper.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/api"
	"github.com/hireverse/gatekeeper/cache"
	"github.com/hireverse/gatekeeper/seed"
	"github.com/hireverse/gatekeeper/store"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "gatekeeper"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Attribute-based authorization for the recruitment platform (roles, permission catalog, guard)"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the gatekeeper authorizer as a Forge extension.
type Extension struct {
	config     Config
	auth       *gatekeeper.Authorizer
	apiHandler *api.API
	logger     *slog.Logger
	authOpts   []gatekeeper.Option
}

// New creates a gatekeeper Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Authorizer returns the underlying authorizer.
func (e *Extension) Authorizer() *gatekeeper.Authorizer { return e.auth }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It initializes the authorizer,
// registers it in the DI container, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(fapp); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*gatekeeper.Authorizer, error) {
		return e.auth, nil
	}); err != nil {
		return fmt.Errorf("gatekeeper: register authorizer in container: %w", err)
	}

	return nil
}

func (e *Extension) init(fapp forge.App) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := make([]gatekeeper.Option, 0, len(e.authOpts)+2)
	opts = append(opts, gatekeeper.WithLogger(logger))

	// The role permission cache is on by default.
	if !e.config.DisableCache {
		opts = append(opts, gatekeeper.WithCache(newRoleCache(e.config)))
	}

	// Try to resolve the store from the DI container; option-provided
	// stores override it.
	if s, err := forge.Inject[store.Store](fapp.Container()); err == nil {
		opts = append(opts, gatekeeper.WithStore(s))
	}

	opts = append(opts, e.authOpts...)

	auth, err := gatekeeper.NewAuthorizer(opts...)
	if err != nil {
		return fmt.Errorf("gatekeeper: create authorizer: %w", err)
	}
	e.auth = auth

	e.apiHandler = api.New(auth, fapp.Router())

	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(fapp.Router()); err != nil {
			return fmt.Errorf("gatekeeper: register routes: %w", err)
		}
	}

	return nil
}

// newRoleCache builds the in-memory role permission cache, applying the
// configured TTL and size bound when set.
func newRoleCache(cfg Config) gatekeeper.Cache {
	copts := make([]cache.MemoryOption, 0, 2)
	if cfg.CacheTTL > 0 {
		copts = append(copts, cache.WithTTL(cfg.CacheTTL))
	}
	if cfg.CacheMaxSize > 0 {
		copts = append(copts, cache.WithMaxSize(cfg.CacheMaxSize))
	}
	return cache.NewMemory(copts...)
}

// Start runs migrations and, when enabled, seeds the default catalog.
func (e *Extension) Start(ctx context.Context) error {
	if e.auth == nil {
		return errors.New("gatekeeper: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if s := e.auth.Store(); s != nil {
			if err := s.Migrate(ctx); err != nil {
				return fmt.Errorf("gatekeeper: migration failed: %w", err)
			}
		}
	}

	if e.config.SeedDefaults {
		if err := seed.Seed(ctx, e.auth.Store()); err != nil {
			return fmt.Errorf("gatekeeper: seed failed: %w", err)
		}
	}

	return e.auth.Start(ctx)
}

// Stop gracefully shuts down the authorizer.
func (e *Extension) Stop(ctx context.Context) error {
	if e.auth == nil {
		return nil
	}
	return e.auth.Stop(ctx)
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.auth == nil {
		return errors.New("gatekeeper: extension not initialized")
	}
	s := e.auth.Store()
	if s == nil {
		return errors.New("gatekeeper: no store configured")
	}
	return s.Ping(ctx)
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all gatekeeper API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
