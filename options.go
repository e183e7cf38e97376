package gatekeeper

import (
	"log/slog"

	"github.com/hireverse/gatekeeper/store"
)

// Option is a functional option for the Authorizer.
type Option func(*Authorizer)

// WithStore sets the composite store.
func WithStore(s store.Store) Option { return func(a *Authorizer) { a.store = s } }

// WithCache sets the role permission cache.
func WithCache(c Cache) Option { return func(a *Authorizer) { a.cache = c } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(a *Authorizer) { a.logger = l } }

// WithConfig sets the authorizer configuration.
func WithConfig(c Config) Option { return func(a *Authorizer) { a.config = c } }
