// Package seed installs the default permission catalog and the three
// platform roles. Seeding is idempotent: existing permissions and roles are
// reused, and role permission sets are replaced wholesale so repeated runs
// converge.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/id"
	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
	"github.com/hireverse/gatekeeper/store"
)

// def is one catalog entry: name, route, method, module tag.
type def struct {
	name    string
	apiPath string
	method  string
	module  string
}

// catalog is the full permission catalog for the eight platform modules.
var catalog = []def{
	// USERS
	{"Create a user", "/api/v1/users", "POST", gatekeeper.ModuleUsers},
	{"List users", "/api/v1/users", "GET", gatekeeper.ModuleUsers},
	{"Get a user", "/api/v1/users/:id", "GET", gatekeeper.ModuleUsers},
	{"Update a user", "/api/v1/users/:id", "PATCH", gatekeeper.ModuleUsers},
	{"Delete a user", "/api/v1/users/:id", "DELETE", gatekeeper.ModuleUsers},

	// COMPANIES
	{"Create a company", "/api/v1/companies", "POST", gatekeeper.ModuleCompanies},
	{"List companies", "/api/v1/companies", "GET", gatekeeper.ModuleCompanies},
	{"Get a company", "/api/v1/companies/:id", "GET", gatekeeper.ModuleCompanies},
	{"Update a company", "/api/v1/companies/:id", "PATCH", gatekeeper.ModuleCompanies},
	{"Delete a company", "/api/v1/companies/:id", "DELETE", gatekeeper.ModuleCompanies},

	// JOBS
	{"Create a job", "/api/v1/jobs", "POST", gatekeeper.ModuleJobs},
	{"List jobs", "/api/v1/jobs", "GET", gatekeeper.ModuleJobs},
	{"Get a job", "/api/v1/jobs/:id", "GET", gatekeeper.ModuleJobs},
	{"Update a job", "/api/v1/jobs/:id", "PATCH", gatekeeper.ModuleJobs},
	{"Delete a job", "/api/v1/jobs/:id", "DELETE", gatekeeper.ModuleJobs},

	// RESUMES
	{"Create a resume", "/api/v1/resumes", "POST", gatekeeper.ModuleResumes},
	{"List resumes", "/api/v1/resumes", "GET", gatekeeper.ModuleResumes},
	{"Get a resume", "/api/v1/resumes/:id", "GET", gatekeeper.ModuleResumes},
	{"Update resume status", "/api/v1/resumes/:id", "PATCH", gatekeeper.ModuleResumes},
	{"Delete a resume", "/api/v1/resumes/:id", "DELETE", gatekeeper.ModuleResumes},
	{"List resumes by user", "/api/v1/resumes/by-user", "POST", gatekeeper.ModuleResumes},

	// FILES
	{"Upload a file", "/api/v1/files/upload", "POST", gatekeeper.ModuleFiles},

	// SUBSCRIBERS
	{"Create a subscriber", "/api/v1/subscribers", "POST", gatekeeper.ModuleSubscribers},
	{"List subscribers", "/api/v1/subscribers", "GET", gatekeeper.ModuleSubscribers},
	{"Get subscriber skills", "/api/v1/subscribers/skills", "GET", gatekeeper.ModuleSubscribers},
	{"Update a subscriber", "/api/v1/subscribers/:id", "PATCH", gatekeeper.ModuleSubscribers},
	{"Delete a subscriber", "/api/v1/subscribers/:id", "DELETE", gatekeeper.ModuleSubscribers},

	// ROLES
	{"Create a role", "/api/v1/roles", "POST", gatekeeper.ModuleRoles},
	{"List roles", "/api/v1/roles", "GET", gatekeeper.ModuleRoles},
	{"Get a role", "/api/v1/roles/:id", "GET", gatekeeper.ModuleRoles},
	{"Update a role", "/api/v1/roles/:id", "PATCH", gatekeeper.ModuleRoles},
	{"Delete a role", "/api/v1/roles/:id", "DELETE", gatekeeper.ModuleRoles},

	// PERMISSIONS
	{"Create a permission", "/api/v1/permissions", "POST", gatekeeper.ModulePermissions},
	{"List permissions", "/api/v1/permissions", "GET", gatekeeper.ModulePermissions},
	{"Get a permission", "/api/v1/permissions/:id", "GET", gatekeeper.ModulePermissions},
	{"Update a permission", "/api/v1/permissions/:id", "PATCH", gatekeeper.ModulePermissions},
	{"Delete a permission", "/api/v1/permissions/:id", "DELETE", gatekeeper.ModulePermissions},
}

// key identifies a catalog entry by (method, apiPath).
type key struct{ method, apiPath string }

// hrBundle is the HR role's permission set: staff for one company. The
// ownership narrowing in the ability builder scopes the mutating entries to
// the HR actor's own company.
var hrBundle = []key{
	{"GET", "/api/v1/users"},
	{"GET", "/api/v1/users/:id"},
	{"GET", "/api/v1/companies"},
	{"GET", "/api/v1/companies/:id"},
	{"PATCH", "/api/v1/companies/:id"},
	{"POST", "/api/v1/jobs"},
	{"GET", "/api/v1/jobs"},
	{"GET", "/api/v1/jobs/:id"},
	{"PATCH", "/api/v1/jobs/:id"},
	{"DELETE", "/api/v1/jobs/:id"},
	{"GET", "/api/v1/resumes"},
	{"GET", "/api/v1/resumes/:id"},
	{"PATCH", "/api/v1/resumes/:id"},
	{"POST", "/api/v1/files/upload"},
	{"GET", "/api/v1/subscribers"},
}

// userBundle is the USER role's permission set: job seekers browsing the
// platform and managing their own records.
var userBundle = []key{
	{"GET", "/api/v1/users/:id"},
	{"PATCH", "/api/v1/users/:id"},
	{"DELETE", "/api/v1/users/:id"},
	{"GET", "/api/v1/companies"},
	{"GET", "/api/v1/companies/:id"},
	{"GET", "/api/v1/jobs"},
	{"GET", "/api/v1/jobs/:id"},
	{"POST", "/api/v1/resumes"},
	{"GET", "/api/v1/resumes/:id"},
	{"PATCH", "/api/v1/resumes/:id"},
	{"DELETE", "/api/v1/resumes/:id"},
	{"POST", "/api/v1/resumes/by-user"},
	{"POST", "/api/v1/files/upload"},
	{"GET", "/api/v1/subscribers/skills"},
	{"POST", "/api/v1/subscribers"},
	{"PATCH", "/api/v1/subscribers/:id"},
	{"DELETE", "/api/v1/subscribers/:id"},
}

// Seed installs the catalog and the SUPER_ADMIN, HR, and USER roles.
func Seed(ctx context.Context, s store.Store) error {
	byKey, err := seedPermissions(ctx, s)
	if err != nil {
		return err
	}

	// SUPER_ADMIN gets every permission; the guard bypasses it anyway,
	// but the attached set keeps the admin UI's role view truthful.
	all := make([]id.PermissionID, 0, len(byKey))
	for _, d := range catalog {
		all = append(all, byKey[key{d.method, d.apiPath}])
	}
	if err := seedRole(ctx, s, gatekeeper.RoleSuperAdmin, "Full platform access", true, all); err != nil {
		return err
	}

	if err := seedRole(ctx, s, gatekeeper.RoleHR, "Company staff managing jobs and resumes", false, resolve(byKey, hrBundle)); err != nil {
		return err
	}

	return seedRole(ctx, s, gatekeeper.RoleUser, "Job seeker", false, resolve(byKey, userBundle))
}

func seedPermissions(ctx context.Context, s store.Store) (map[key]id.PermissionID, error) {
	byKey := make(map[key]id.PermissionID, len(catalog))
	for _, d := range catalog {
		existing, err := s.GetPermissionByPathAndMethod(ctx, d.apiPath, d.method, id.Nil)
		if err == nil {
			byKey[key{d.method, d.apiPath}] = existing.ID
			continue
		}
		if !errors.Is(err, permission.ErrNotFound) {
			return nil, fmt.Errorf("seed: lookup %s %s: %w", d.method, d.apiPath, err)
		}

		p := &permission.Permission{
			ID:      id.NewPermissionID(),
			Name:    d.name,
			APIPath: d.apiPath,
			Method:  d.method,
			Module:  d.module,
		}
		if err := s.CreatePermission(ctx, p); err != nil {
			return nil, fmt.Errorf("seed: create %s %s: %w", d.method, d.apiPath, err)
		}
		byKey[key{d.method, d.apiPath}] = p.ID
	}
	return byKey, nil
}

func seedRole(ctx context.Context, s store.Store, name, description string, system bool, permIDs []id.PermissionID) error {
	r, err := s.GetRoleByName(ctx, name)
	if errors.Is(err, role.ErrNotFound) {
		r = &role.Role{
			ID:          id.NewRoleID(),
			Name:        name,
			Description: description,
			IsActive:    true,
			IsSystem:    system,
		}
		if err := s.CreateRole(ctx, r); err != nil {
			return fmt.Errorf("seed: create role %s: %w", name, err)
		}
	} else if err != nil {
		return fmt.Errorf("seed: lookup role %s: %w", name, err)
	}

	if err := s.SetRolePermissions(ctx, r.ID, permIDs); err != nil {
		return fmt.Errorf("seed: set permissions for role %s: %w", name, err)
	}
	return nil
}

func resolve(byKey map[key]id.PermissionID, bundle []key) []id.PermissionID {
	ids := make([]id.PermissionID, 0, len(bundle))
	for _, k := range bundle {
		if pid, ok := byKey[k]; ok {
			ids = append(ids, pid)
		}
	}
	return ids
}
