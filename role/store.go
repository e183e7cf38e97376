package role

import (
	"context"

	"github.com/hireverse/gatekeeper/id"
	"github.com/hireverse/gatekeeper/permission"
)

// Store defines the storage interface for roles and their permission
// bindings.
type Store interface {
	// CreateRole persists a new role.
	CreateRole(ctx context.Context, r *Role) error

	// GetRole retrieves a role by id.
	GetRole(ctx context.Context, roleID id.RoleID) (*Role, error)

	// GetRoleByName retrieves a role by its (case-sensitive) name.
	GetRoleByName(ctx context.Context, name string) (*Role, error)

	// UpdateRole persists changes to an existing role. Renaming a system
	// role returns ErrImmutable.
	UpdateRole(ctx context.Context, r *Role) error

	// DeleteRole removes a role and all its permission bindings. Deleting
	// a system role returns ErrImmutable.
	DeleteRole(ctx context.Context, roleID id.RoleID) error

	// ListRoles lists roles matching the filter (nil means all).
	ListRoles(ctx context.Context, filter *ListFilter) ([]*Role, error)

	// CountRoles counts roles matching the filter.
	CountRoles(ctx context.Context, filter *ListFilter) (int64, error)

	// ListRolePermissions returns the permissions attached to a role.
	ListRolePermissions(ctx context.Context, roleID id.RoleID) ([]*permission.Permission, error)

	// AttachPermission binds a permission to a role. Attaching an already
	// attached permission is a no-op.
	AttachPermission(ctx context.Context, roleID id.RoleID, permissionID id.PermissionID) error

	// DetachPermission removes a permission binding from a role.
	DetachPermission(ctx context.Context, roleID id.RoleID, permissionID id.PermissionID) error

	// SetRolePermissions replaces a role's permission set wholesale.
	SetRolePermissions(ctx context.Context, roleID id.RoleID, permissionIDs []id.PermissionID) error
}
