package gatekeeper

import (
	"context"
	"errors"
	"testing"

	"github.com/hireverse/gatekeeper/permission"
)

func TestAuthorizeSkipCheck(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	v := auth.Authorize(context.Background(), nil, &Endpoint{
		Method:       "DELETE",
		Path:         "/api/v1/users/:id",
		SkipCheck:    true,
		Requirements: []Requirement{{Action: ActionDelete, Subject: SubjectUser}},
	})
	if !v.Allowed {
		t.Fatalf("expected skip to allow, got %s", v.Reason)
	}
}

func TestAuthorizeAnonymous(t *testing.T) {
	auth, _ := newTestAuthorizer(t)
	ctx := context.Background()

	// No declared requirements: the endpoint is public.
	v := auth.Authorize(ctx, nil, &Endpoint{Method: "GET", Path: "/api/v1/health"})
	if !v.Allowed {
		t.Fatal("expected public endpoint to allow anonymous")
	}

	// Guest ability covers browsing jobs.
	v = auth.Authorize(ctx, nil, &Endpoint{
		Method:       "GET",
		Path:         "/api/v1/jobs",
		Requirements: []Requirement{{Action: ActionRead, Subject: SubjectJob}},
	})
	if !v.Allowed {
		t.Fatalf("expected guest read job to allow, got %s", v.Reason)
	}

	// Guest ability does not cover creating jobs.
	v = auth.Authorize(ctx, nil, &Endpoint{
		Method:       "POST",
		Path:         "/api/v1/jobs",
		Requirements: []Requirement{{Action: ActionCreate, Subject: SubjectJob}},
	})
	if v.Allowed {
		t.Fatal("expected anonymous job creation to deny")
	}
	if v.Code != CodeDenyUnauthenticated {
		t.Fatalf("expected unauthenticated code, got %s", v.Code)
	}
	if v.Reason != "not authenticated" {
		t.Fatalf("unexpected reason %q", v.Reason)
	}
}

func TestAuthorizeSuperAdminBypass(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	admin := &Actor{ID: "a1", Role: RoleRef{Name: RoleSuperAdmin}}
	v := auth.Authorize(context.Background(), admin, &Endpoint{
		Method:       "DELETE",
		Path:         "/api/v1/roles/:id",
		Requirements: []Requirement{{Action: ActionDelete, Subject: SubjectRole}},
	})
	if !v.Allowed {
		t.Fatalf("expected super admin bypass, got %s", v.Reason)
	}
}

func TestAuthorizeOwnRecord(t *testing.T) {
	auth, s := newTestAuthorizer(t)
	seedRole(t, s, RoleUser, false,
		&permission.Permission{Name: "Update user", Method: "PATCH", APIPath: "/api/v1/users/:id", Module: ModuleUsers},
	)
	ctx := context.Background()
	actor := &Actor{ID: "u1", Role: RoleRef{Name: RoleUser}}

	v := auth.Authorize(ctx, actor, &Endpoint{
		Method: "PATCH",
		Path:   "/api/v1/users/:id",
		Requirements: []Requirement{
			{Action: ActionUpdate, Subject: SubjectUser, Target: &Resource{ID: "u1", OwnerID: "u1"}},
		},
	})
	if !v.Allowed {
		t.Fatalf("expected own record update to allow, got %s", v.Reason)
	}

	v = auth.Authorize(ctx, actor, &Endpoint{
		Method: "PATCH",
		Path:   "/api/v1/users/:id",
		Requirements: []Requirement{
			{Action: ActionUpdate, Subject: SubjectUser, Target: &Resource{ID: "u2", OwnerID: "u2"}},
		},
	})
	if v.Allowed {
		t.Fatal("expected another record update to deny")
	}
	if v.Code != CodeDenyNoRule {
		t.Fatalf("expected deny_no_rule, got %s", v.Code)
	}
}

func TestAuthorizeLegacyFallback(t *testing.T) {
	auth, _ := newTestAuthorizer(t)
	ctx := context.Background()

	actor := &Actor{
		ID:   "u1",
		Role: RoleRef{Name: RoleUser},
		Permissions: []*permission.Permission{
			{Method: "GET", APIPath: "/jobs/:id", Module: ModuleJobs},
		},
	}

	// Exact (method, path) match against the attached list.
	v := auth.Authorize(ctx, actor, &Endpoint{Method: "GET", Path: "/jobs/:id"})
	if !v.Allowed {
		t.Fatalf("expected legacy match to allow, got %s", v.Reason)
	}

	v = auth.Authorize(ctx, actor, &Endpoint{Method: "DELETE", Path: "/jobs/:id"})
	if v.Allowed {
		t.Fatal("expected legacy mismatch to deny")
	}
	if v.Code != CodeDenyNoEndpoint {
		t.Fatalf("expected deny_no_endpoint, got %s", v.Code)
	}
	if v.Reason != "no permission for DELETE /jobs/:id" {
		t.Fatalf("unexpected reason %q", v.Reason)
	}

	// A concrete request path matches the stored route template.
	v = auth.Authorize(ctx, actor, &Endpoint{Method: "GET", Path: "/jobs/123"})
	if !v.Allowed {
		t.Fatalf("expected concrete path to match the template, got %s", v.Reason)
	}
	v = auth.Authorize(ctx, actor, &Endpoint{Method: "GET", Path: "/jobs/1/applicants"})
	if v.Allowed {
		t.Fatal("expected an extra segment to deny")
	}
}

func TestAuthorizeRequirementOrdering(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	actor := &Actor{
		ID:   "u1",
		Role: RoleRef{Name: RoleUser},
		Permissions: []*permission.Permission{
			{Method: "GET", APIPath: "/api/v1/jobs", Module: ModuleJobs},
		},
	}

	// The first unsatisfied requirement names the deny, in declaration order.
	v := auth.Authorize(context.Background(), actor, &Endpoint{
		Method: "GET",
		Path:   "/api/v1/jobs",
		Requirements: []Requirement{
			{Action: ActionDelete, Subject: SubjectCompany},
			{Action: ActionDelete, Subject: SubjectJob},
		},
	})
	if v.Allowed {
		t.Fatal("expected deny")
	}
	if v.Reason != "you don't have permission to delete Company" {
		t.Fatalf("unexpected reason %q", v.Reason)
	}
}

func TestAuthorizeRecordsEvalTime(t *testing.T) {
	auth, _ := newTestAuthorizer(t)
	v := auth.Authorize(context.Background(), nil, &Endpoint{Method: "GET", Path: "/x", SkipCheck: true})
	if v.EvalTimeNs < 0 {
		t.Fatalf("expected non-negative eval time, got %d", v.EvalTimeNs)
	}
}

func TestEnforce(t *testing.T) {
	auth, _ := newTestAuthorizer(t)
	ctx := context.Background()

	if err := auth.Enforce(ctx, nil, &Endpoint{Method: "GET", Path: "/x", SkipCheck: true}); err != nil {
		t.Fatal(err)
	}

	err := auth.Enforce(ctx, nil, &Endpoint{
		Method:       "POST",
		Path:         "/api/v1/jobs",
		Requirements: []Requirement{{Action: ActionCreate, Subject: SubjectJob}},
	})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	actor := &Actor{ID: "u1", Role: RoleRef{Name: "GHOST"}}
	err = auth.Enforce(ctx, actor, &Endpoint{
		Method:       "POST",
		Path:         "/api/v1/jobs",
		Requirements: []Requirement{{Action: ActionCreate, Subject: SubjectJob}},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestActorContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if ActorFromContext(ctx) != nil {
		t.Fatal("expected nil actor on empty context")
	}

	actor := &Actor{ID: "u1", Role: RoleRef{Name: RoleUser}}
	ctx = WithActor(ctx, actor)
	got := ActorFromContext(ctx)
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected actor u1, got %+v", got)
	}
}
