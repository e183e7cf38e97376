package seed_test

import (
	"context"
	"testing"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/seed"
	"github.com/hireverse/gatekeeper/store/memory"
)

func TestSeedInstallsCatalogAndRoles(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if err := seed.Seed(ctx, s); err != nil {
		t.Fatal(err)
	}

	total, err := s.CountPermissions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if total == 0 {
		t.Fatal("expected the catalog to be installed")
	}

	admin, err := s.GetRoleByName(ctx, gatekeeper.RoleSuperAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if !admin.IsSystem {
		t.Fatal("expected SUPER_ADMIN to be a system role")
	}
	adminPerms, err := s.ListRolePermissions(ctx, admin.ID)
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(adminPerms)) != total {
		t.Fatalf("expected SUPER_ADMIN to carry all %d permissions, got %d", total, len(adminPerms))
	}

	hr, err := s.GetRoleByName(ctx, gatekeeper.RoleHR)
	if err != nil {
		t.Fatal(err)
	}
	if hr.IsSystem {
		t.Fatal("expected HR to be a regular role")
	}
	hrPerms, err := s.ListRolePermissions(ctx, hr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !hasRoute(hrPerms, "PATCH", "/api/v1/jobs/:id") {
		t.Fatal("expected HR to hold PATCH /api/v1/jobs/:id")
	}
	if hasRoute(hrPerms, "DELETE", "/api/v1/users/:id") {
		t.Fatal("did not expect HR to hold DELETE /api/v1/users/:id")
	}

	user, err := s.GetRoleByName(ctx, gatekeeper.RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	userPerms, err := s.ListRolePermissions(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !hasRoute(userPerms, "DELETE", "/api/v1/users/:id") {
		t.Fatal("expected USER to hold DELETE /api/v1/users/:id")
	}
	if hasRoute(userPerms, "POST", "/api/v1/jobs") {
		t.Fatal("did not expect USER to hold POST /api/v1/jobs")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if err := seed.Seed(ctx, s); err != nil {
		t.Fatal(err)
	}
	permsBefore, err := s.CountPermissions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	rolesBefore, err := s.CountRoles(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := seed.Seed(ctx, s); err != nil {
		t.Fatal(err)
	}

	permsAfter, err := s.CountPermissions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	rolesAfter, err := s.CountRoles(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if permsAfter != permsBefore {
		t.Fatalf("expected permission count to stay at %d, got %d", permsBefore, permsAfter)
	}
	if rolesAfter != rolesBefore {
		t.Fatalf("expected role count to stay at %d, got %d", rolesBefore, rolesAfter)
	}

	hr, err := s.GetRoleByName(ctx, gatekeeper.RoleHR)
	if err != nil {
		t.Fatal(err)
	}
	hrPerms, err := s.ListRolePermissions(ctx, hr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(hrPerms) == 0 {
		t.Fatal("expected HR to keep its permission set after reseeding")
	}
}

func hasRoute(perms []*permission.Permission, method, apiPath string) bool {
	for _, p := range perms {
		if p.Method == method && p.APIPath == apiPath {
			return true
		}
	}
	return false
}
