package gatekeeper

import (
	"context"
	"testing"

	"github.com/hireverse/gatekeeper/id"
	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
	"github.com/hireverse/gatekeeper/store/memory"
)

// fakeCache is a minimal Cache used to observe hits and invalidations
// without importing the cache package (which imports this one).
type fakeCache struct {
	entries map[string][]*permission.Permission
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*permission.Permission)}
}

func (c *fakeCache) Get(_ context.Context, roleKey string) ([]*permission.Permission, bool) {
	perms, ok := c.entries[roleKey]
	if ok {
		c.hits++
	}
	return perms, ok
}

func (c *fakeCache) Set(_ context.Context, roleKey string, perms []*permission.Permission) {
	c.entries[roleKey] = perms
}

func (c *fakeCache) Invalidate(_ context.Context, roleKey string) {
	delete(c.entries, roleKey)
}

func (c *fakeCache) Clear(_ context.Context) {
	c.entries = make(map[string][]*permission.Permission)
}

func newTestAuthorizer(t *testing.T) (*Authorizer, *memory.Store) {
	t.Helper()
	s := memory.New()
	auth, err := NewAuthorizer(WithStore(s))
	if err != nil {
		t.Fatal(err)
	}
	return auth, s
}

// seedRole creates a role with the given permissions attached.
func seedRole(t *testing.T, s *memory.Store, name string, system bool, perms ...*permission.Permission) *role.Role {
	t.Helper()
	ctx := context.Background()
	r := &role.Role{ID: id.NewRoleID(), Name: name, IsActive: true, IsSystem: system}
	if err := s.CreateRole(ctx, r); err != nil {
		t.Fatal(err)
	}
	for _, p := range perms {
		if p.ID.IsNil() {
			p.ID = id.NewPermissionID()
		}
		if err := s.CreatePermission(ctx, p); err != nil {
			t.Fatal(err)
		}
		if err := s.AttachPermission(ctx, r.ID, p.ID); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestNewAuthorizerRequiresStore(t *testing.T) {
	_, err := NewAuthorizer()
	if err == nil {
		t.Fatal("expected error when store is nil")
	}
}

func TestAbilityForActorSuperAdmin(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	// No role in the store; the bypass must not touch it.
	a := auth.AbilityForActor(context.Background(), &Actor{
		ID:   "admin",
		Role: RoleRef{Name: RoleSuperAdmin},
	})

	if !a.Can(ActionDelete, SubjectRole) {
		t.Fatal("expected super admin to manage everything")
	}
}

func TestAbilityForActorUnknownRoleDeniesAll(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	a := auth.AbilityForActor(context.Background(), &Actor{
		ID:   "u1",
		Role: RoleRef{Name: "GHOST"},
	})

	if len(a.Rules()) != 0 {
		t.Fatalf("expected empty ability, got %d rules", len(a.Rules()))
	}
	if a.Can(ActionRead, SubjectJob) {
		t.Fatal("expected deny-all for unknown role")
	}
}

func TestAbilityForActorPrefersAttachedPermissions(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	actor := &Actor{
		ID:   "u1",
		Role: RoleRef{Name: "GHOST"}, // not in the store
		Permissions: []*permission.Permission{
			{Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
		},
	}

	a := auth.AbilityForActor(context.Background(), actor)
	if !a.Can(ActionRead, SubjectJob) {
		t.Fatal("expected attached permissions to build the ability")
	}
}

func TestAbilityForActorResolvesFromStore(t *testing.T) {
	auth, s := newTestAuthorizer(t)
	seedRole(t, s, RoleHR, false,
		&permission.Permission{Name: "List jobs", Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
		&permission.Permission{Name: "Update job", Method: "PATCH", APIPath: "/api/v1/jobs/:id", Module: ModuleJobs},
	)

	actor := &Actor{
		ID:      "hr1",
		Role:    RoleRef{Name: RoleHR},
		Company: &CompanyRef{ID: "c1"},
	}
	a := auth.AbilityForActor(context.Background(), actor)

	if !a.Can(ActionRead, SubjectJob) {
		t.Fatal("expected read job")
	}
	if !a.CanInstance(ActionUpdate, SubjectJob, Resource{ID: "j1", CompanyID: "c1"}) {
		t.Fatal("expected update of own company's job")
	}
	if a.CanInstance(ActionUpdate, SubjectJob, Resource{ID: "j2", CompanyID: "c2"}) {
		t.Fatal("expected deny for another company's job")
	}
}

func TestAbilityForActorUserNarrowing(t *testing.T) {
	auth, s := newTestAuthorizer(t)
	seedRole(t, s, RoleUser, false,
		&permission.Permission{Name: "Update user", Method: "PATCH", APIPath: "/api/v1/users/:id", Module: ModuleUsers},
		&permission.Permission{Name: "Delete file", Method: "DELETE", APIPath: "/api/v1/files/:id", Module: ModuleFiles},
		&permission.Permission{Name: "List jobs", Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
	)

	actor := &Actor{ID: "u1", Role: RoleRef{Name: RoleUser}}
	a := auth.AbilityForActor(context.Background(), actor)

	if !a.CanInstance(ActionUpdate, SubjectUser, Resource{ID: "u1", OwnerID: "u1"}) {
		t.Fatal("expected user to update own record")
	}
	if a.CanInstance(ActionUpdate, SubjectUser, Resource{ID: "u2", OwnerID: "u2"}) {
		t.Fatal("expected user denied on another record")
	}
	if !a.CanInstance(ActionDelete, SubjectFile, Resource{ID: "f1", OwnerID: "u1"}) {
		t.Fatal("expected user to delete own file")
	}
	if a.CanInstance(ActionDelete, SubjectFile, Resource{ID: "f2", OwnerID: "u2"}) {
		t.Fatal("expected user denied on another user's file")
	}
	// Unnarrowed subjects stay unconstrained.
	if !a.CanInstance(ActionRead, SubjectJob, Resource{ID: "j1", CompanyID: "c9"}) {
		t.Fatal("expected unconstrained read")
	}
}

func TestAbilityForActorHRNarrowing(t *testing.T) {
	auth, s := newTestAuthorizer(t)
	seedRole(t, s, RoleHR, false,
		&permission.Permission{Name: "Update user", Method: "PATCH", APIPath: "/api/v1/users/:id", Module: ModuleUsers},
		&permission.Permission{Name: "Delete user", Method: "DELETE", APIPath: "/api/v1/users/:id", Module: ModuleUsers},
		&permission.Permission{Name: "Update company", Method: "PATCH", APIPath: "/api/v1/companies/:id", Module: ModuleCompanies},
	)

	actor := &Actor{ID: "hr1", Role: RoleRef{Name: RoleHR}, Company: &CompanyRef{ID: "c1"}}
	a := auth.AbilityForActor(context.Background(), actor)

	// User mutations are scoped to the HR actor's company.
	if !a.CanInstance(ActionUpdate, SubjectUser, Resource{ID: "u1", CompanyID: "c1"}) {
		t.Fatal("expected HR to update a user in its own company")
	}
	if a.CanInstance(ActionUpdate, SubjectUser, Resource{ID: "u2", CompanyID: "c2"}) {
		t.Fatal("expected HR denied on another company's user")
	}
	if !a.CanInstance(ActionDelete, SubjectUser, Resource{ID: "u1", CompanyID: "c1"}) {
		t.Fatal("expected HR to delete a user in its own company")
	}
	if a.CanInstance(ActionDelete, SubjectUser, Resource{ID: "u2", CompanyID: "c2"}) {
		t.Fatal("expected HR denied deleting another company's user")
	}

	// Company mutations only cover the actor's own company record.
	if !a.CanInstance(ActionUpdate, SubjectCompany, Resource{ID: "c1", CompanyID: "c1"}) {
		t.Fatal("expected HR to update its own company")
	}
	if a.CanInstance(ActionUpdate, SubjectCompany, Resource{ID: "c2", CompanyID: "c2"}) {
		t.Fatal("expected HR denied on another company")
	}
}

func TestAbilityForActorHRWithoutCompanyUnconstrained(t *testing.T) {
	auth, s := newTestAuthorizer(t)
	seedRole(t, s, RoleHR, false,
		&permission.Permission{Name: "Update user", Method: "PATCH", APIPath: "/api/v1/users/:id", Module: ModuleUsers},
	)

	// No company ref: the narrowing has nothing to scope to, so the rule
	// stays broad.
	actor := &Actor{ID: "hr1", Role: RoleRef{Name: RoleHR}}
	a := auth.AbilityForActor(context.Background(), actor)

	if !a.CanInstance(ActionUpdate, SubjectUser, Resource{ID: "u9", CompanyID: "c9"}) {
		t.Fatal("expected unscoped HR rule to stay unconstrained")
	}
}

func TestAbilityForActorSkipsUnknownMappings(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	actor := &Actor{
		ID:   "u1",
		Role: RoleRef{Name: RoleUser},
		Permissions: []*permission.Permission{
			{Method: "OPTIONS", APIPath: "/api/v1/jobs", Module: ModuleJobs},
			{Method: "GET", APIPath: "/api/v1/widgets", Module: "WIDGETS"},
			{Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
		},
	}
	a := auth.AbilityForActor(context.Background(), actor)

	if got := len(a.Rules()); got != 1 {
		t.Fatalf("expected 1 rule after skipping unmapped permissions, got %d", got)
	}
}

func TestAbilityForActorUsesCache(t *testing.T) {
	s := memory.New()
	c := newFakeCache()
	auth, err := NewAuthorizer(WithStore(s), WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	seedRole(t, s, RoleHR, false,
		&permission.Permission{Name: "List jobs", Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
	)

	actor := &Actor{ID: "hr1", Role: RoleRef{Name: RoleHR}, Company: &CompanyRef{ID: "c1"}}
	ctx := context.Background()

	auth.AbilityForActor(ctx, actor)
	if c.hits != 0 {
		t.Fatalf("expected first build to miss, got %d hits", c.hits)
	}
	auth.AbilityForActor(ctx, actor)
	if c.hits != 1 {
		t.Fatalf("expected second build to hit the cache, got %d hits", c.hits)
	}
}

func TestInvalidateRoleReflectsNewPermissions(t *testing.T) {
	s := memory.New()
	c := newFakeCache()
	auth, err := NewAuthorizer(WithStore(s), WithCache(c))
	if err != nil {
		t.Fatal(err)
	}
	r := seedRole(t, s, RoleHR, false,
		&permission.Permission{Name: "List jobs", Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
	)

	ctx := context.Background()
	actor := &Actor{ID: "hr1", Role: RoleRef{Name: RoleHR}, Company: &CompanyRef{ID: "c1"}}

	if a := auth.AbilityForActor(ctx, actor); a.Can(ActionCreate, SubjectJob) {
		t.Fatal("expected no create permission yet")
	}

	// Grant job creation, then invalidate the cached role.
	p := &permission.Permission{ID: id.NewPermissionID(), Name: "Create job", Method: "POST", APIPath: "/api/v1/jobs", Module: ModuleJobs}
	if err := s.CreatePermission(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := s.AttachPermission(ctx, r.ID, p.ID); err != nil {
		t.Fatal(err)
	}
	auth.InvalidateRole(ctx, RoleHR)

	if a := auth.AbilityForActor(ctx, actor); !a.Can(ActionCreate, SubjectJob) {
		t.Fatal("expected new permission set after invalidation")
	}
}

func TestAbilityForGuest(t *testing.T) {
	auth, _ := newTestAuthorizer(t)
	g := auth.AbilityForGuest()

	if !g.Can(ActionRead, SubjectCompany) || !g.Can(ActionRead, SubjectJob) {
		t.Fatal("expected guest to browse companies and jobs")
	}
	if !g.Can(ActionCreate, SubjectSubscriber) || !g.Can(ActionDelete, SubjectSubscriber) {
		t.Fatal("expected guest to manage newsletter subscriptions")
	}
	if g.Can(ActionCreate, SubjectJob) {
		t.Fatal("expected guest denied job creation")
	}
}
