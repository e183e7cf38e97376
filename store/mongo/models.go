package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/hireverse/gatekeeper/id"
	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
)

// ──────────────────────────────────────────────────
// Role model
// ──────────────────────────────────────────────────

type roleModel struct {
	grove.BaseModel `grove:"table:gatekeeper_roles"`
	ID              string    `grove:"id,pk"       bson:"_id"`
	Name            string    `grove:"name"        bson:"name"`
	Description     string    `grove:"description" bson:"description"`
	IsActive        bool      `grove:"is_active"   bson:"is_active"`
	IsSystem        bool      `grove:"is_system"   bson:"is_system"`
	CreatedAt       time.Time `grove:"created_at"  bson:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"  bson:"updated_at"`
}

func roleToModel(r *role.Role) *roleModel {
	return &roleModel{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func roleFromModel(m *roleModel) *role.Role {
	rid, _ := id.ParseRoleID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &role.Role{
		ID:          rid,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		IsSystem:    m.IsSystem,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Permission model
// ──────────────────────────────────────────────────

type permissionModel struct {
	grove.BaseModel `grove:"table:gatekeeper_permissions"`
	ID              string    `grove:"id,pk"       bson:"_id"`
	Name            string    `grove:"name"        bson:"name"`
	APIPath         string    `grove:"api_path"    bson:"api_path"`
	Method          string    `grove:"method"      bson:"method"`
	Module          string    `grove:"module"      bson:"module"`
	Description     string    `grove:"description" bson:"description"`
	CreatedAt       time.Time `grove:"created_at"  bson:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"  bson:"updated_at"`
}

func permissionToModel(p *permission.Permission) *permissionModel {
	return &permissionModel{
		ID:          p.ID.String(),
		Name:        p.Name,
		APIPath:     p.APIPath,
		Method:      p.Method,
		Module:      p.Module,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func permissionFromModel(m *permissionModel) *permission.Permission {
	pid, _ := id.ParsePermissionID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &permission.Permission{
		ID:          pid,
		Name:        m.Name,
		APIPath:     m.APIPath,
		Method:      m.Method,
		Module:      m.Module,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Role-permission link model
// ──────────────────────────────────────────────────

type rolePermissionModel struct {
	grove.BaseModel `grove:"table:gatekeeper_role_permissions"`
	RoleID          string `grove:"role_id"       bson:"role_id"`
	PermissionID    string `grove:"permission_id" bson:"permission_id"`
}
