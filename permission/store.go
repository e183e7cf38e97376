package permission

import (
	"context"

	"github.com/hireverse/gatekeeper/id"
)

// Store defines the storage interface for permissions.
type Store interface {
	// CreatePermission persists a new permission.
	CreatePermission(ctx context.Context, p *Permission) error

	// GetPermission retrieves a permission by id.
	GetPermission(ctx context.Context, permissionID id.PermissionID) (*Permission, error)

	// GetPermissionByPathAndMethod retrieves the permission registered for
	// the given (apiPath, method) pair. excludeID, when non-zero, is left
	// out of the lookup so an update does not collide with itself.
	GetPermissionByPathAndMethod(ctx context.Context, apiPath, method string, excludeID id.PermissionID) (*Permission, error)

	// UpdatePermission persists changes to an existing permission.
	UpdatePermission(ctx context.Context, p *Permission) error

	// DeletePermission removes a permission and detaches it from every role.
	DeletePermission(ctx context.Context, permissionID id.PermissionID) error

	// ListPermissions lists permissions matching the filter (nil means all).
	ListPermissions(ctx context.Context, filter *ListFilter) ([]*Permission, error)

	// CountPermissions counts permissions matching the filter.
	CountPermissions(ctx context.Context, filter *ListFilter) (int64, error)
}
