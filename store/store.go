// Package store defines the composite storage interface backing the
// authorizer. Backends implement it in subpackages (memory, mongo).
package store

import (
	"context"

	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
)

// Store is the composite storage interface: role and permission stores plus
// lifecycle operations.
type Store interface {
	role.Store
	permission.Store

	// Migrate creates collections and indexes. Idempotent.
	Migrate(ctx context.Context) error

	// Ping checks datastore connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
