package api

import "github.com/hireverse/gatekeeper"

// ──────────────────────────────────────────────────
// Check requests
// ──────────────────────────────────────────────────

// CheckRequest is the request body for an authorization check.
type CheckRequest struct {
	Actor        *gatekeeper.Actor        `json:"actor,omitempty" description:"Actor to evaluate (omit for anonymous)"`
	Method       string                   `json:"method" description:"HTTP method of the route"`
	Path         string                   `json:"path" description:"Matched route template"`
	SkipCheck    bool                     `json:"skip_check,omitempty" description:"Endpoint skip flag"`
	Requirements []gatekeeper.Requirement `json:"requirements,omitempty" description:"Declared (action, subject) requirements"`
}

// ──────────────────────────────────────────────────
// Role requests
// ──────────────────────────────────────────────────

// CreateRoleRequest is the body for creating a role.
type CreateRoleRequest struct {
	Name        string `json:"name" description:"Role name (e.g. HR)"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	IsActive    *bool  `json:"isActive,omitempty" description:"Active flag (default: true)"`
}

// UpdateRoleRequest is the body for updating a role.
type UpdateRoleRequest struct {
	Name        string `json:"name,omitempty" description:"Role name"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
	IsActive    *bool  `json:"isActive,omitempty" description:"Active flag"`
}

// GetRoleRequest is the path parameter for getting a role.
type GetRoleRequest struct {
	RoleID string `path:"roleId" description:"Role ID"`
}

// ListRolesRequest holds query parameters for listing roles.
type ListRolesRequest struct {
	Search string `query:"search" description:"Search by name"`
	Limit  int    `query:"limit" description:"Maximum results (default: 50)"`
	Offset int    `query:"offset" description:"Results to skip"`
}

// AttachPermissionRequest is the body for attaching a permission to a role.
type AttachPermissionRequest struct {
	PermissionID string `json:"permission_id" description:"Permission ID to attach"`
}

// SetRolePermissionsRequest replaces a role's permission set.
type SetRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" description:"Full permission ID set for the role"`
}

// ──────────────────────────────────────────────────
// Permission requests
// ──────────────────────────────────────────────────

// CreatePermissionRequest is the body for creating a permission.
type CreatePermissionRequest struct {
	Name        string `json:"name" description:"Permission name (e.g. List jobs)"`
	APIPath     string `json:"apiPath" description:"Route template (e.g. /api/v1/jobs/:id)"`
	Method      string `json:"method" description:"HTTP method"`
	Module      string `json:"module" description:"Module tag (e.g. JOBS)"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
}

// UpdatePermissionRequest is the body for updating a permission.
type UpdatePermissionRequest struct {
	Name        string `json:"name,omitempty" description:"Permission name"`
	APIPath     string `json:"apiPath,omitempty" description:"Route template"`
	Method      string `json:"method,omitempty" description:"HTTP method"`
	Module      string `json:"module,omitempty" description:"Module tag"`
	Description string `json:"description,omitempty" description:"Human-readable description"`
}

// GetPermissionRequest is the path parameter for getting a permission.
type GetPermissionRequest struct {
	PermissionID string `path:"permissionId" description:"Permission ID"`
}

// ListPermissionsRequest holds query parameters.
type ListPermissionsRequest struct {
	Module string `query:"module" description:"Filter by module tag"`
	Method string `query:"method" description:"Filter by HTTP method"`
	Search string `query:"search" description:"Search by name or apiPath"`
	Limit  int    `query:"limit" description:"Maximum results"`
	Offset int    `query:"offset" description:"Results to skip"`
}
