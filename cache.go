package gatekeeper

import (
	"context"

	"github.com/hireverse/gatekeeper/permission"
)

// Cache provides caching for resolved role permission sets.
type Cache interface {
	// Get returns the cached permission set for a role, if available
	// and not expired.
	Get(ctx context.Context, roleKey string) ([]*permission.Permission, bool)

	// Set stores a role's permission set in the cache.
	Set(ctx context.Context, roleKey string, perms []*permission.Permission)

	// Invalidate removes the cached permission set for one role.
	Invalidate(ctx context.Context, roleKey string)

	// Clear removes all cached permission sets.
	Clear(ctx context.Context)
}
