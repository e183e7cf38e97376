// Package gatekeeper provides attribute-based authorization for a
// recruitment platform.
//
// Gatekeeper decides, per request, whether an actor (identified by its role,
// scoped company, and a dynamically loaded permission set) may perform an
// action on a resource. Rules are derived from the permission catalog stored
// in the authoritative role/permission store, narrowed by ownership (a user
// may edit only their own record, HR only records of their own company), and
// cached per role with a short TTL.
//
//	auth, err := gatekeeper.NewAuthorizer(
//	    gatekeeper.WithStore(memStore),
//	)
//	verdict := auth.Authorize(ctx, actor, &gatekeeper.Endpoint{
//	    Method: "PATCH",
//	    Path:   "/api/v1/jobs/:id",
//	    Requirements: []gatekeeper.Requirement{
//	        {Action: gatekeeper.ActionUpdate, Subject: gatekeeper.SubjectJob},
//	    },
//	})
package gatekeeper

import "github.com/hireverse/gatekeeper/permission"

// Action is an abstract verb derived from an HTTP method.
type Action string

const (
	// ActionRead corresponds to GET.
	ActionRead Action = "read"

	// ActionCreate corresponds to POST.
	ActionCreate Action = "create"

	// ActionUpdate corresponds to PUT and PATCH.
	ActionUpdate Action = "update"

	// ActionDelete corresponds to DELETE.
	ActionDelete Action = "delete"

	// ActionManage grants every action. Only the super-admin rule uses it.
	ActionManage Action = "manage"
)

// SubjectType is the resource kind a rule applies to.
type SubjectType string

const (
	SubjectUser       SubjectType = "User"
	SubjectCompany    SubjectType = "Company"
	SubjectJob        SubjectType = "Job"
	SubjectResume     SubjectType = "Resume"
	SubjectFile       SubjectType = "File"
	SubjectSubscriber SubjectType = "Subscriber"
	SubjectRole       SubjectType = "Role"
	SubjectPermission SubjectType = "Permission"

	// SubjectAll is the wildcard subject matched by the super-admin rule.
	SubjectAll SubjectType = "all"
)

// Role names seeded by the platform. Any other role name is resolved
// dynamically from the store; an unknown name yields a deny-all ability.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleHR         = "HR"
	RoleUser       = "USER"
)

// Module tags carried by catalog permissions, mapped to subject types
// by the ability builder.
const (
	ModuleUsers       = "USERS"
	ModuleCompanies   = "COMPANIES"
	ModuleJobs        = "JOBS"
	ModuleResumes     = "RESUMES"
	ModuleFiles       = "FILES"
	ModuleSubscribers = "SUBSCRIBERS"
	ModuleRoles       = "ROLES"
	ModulePermissions = "PERMISSIONS"
)

// RoleRef identifies the actor's role as attached by the authentication
// layer. ID may be empty for tokens minted before roles carried ids; the
// builder then resolves the role by name.
type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CompanyRef identifies the company an actor is scoped to.
type CompanyRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Actor is the authenticated caller of the current request. It is
// constructed once per request from verified credentials and treated as
// immutable; gatekeeper trusts its contents verbatim.
type Actor struct {
	ID      string      `json:"id"`
	Email   string      `json:"email,omitempty"`
	Role    RoleRef     `json:"role"`
	Company *CompanyRef `json:"company,omitempty"`

	// Permissions is the permission set attached at authentication time.
	// When empty, the ability builder derives the set from the role.
	Permissions []*permission.Permission `json:"permissions,omitempty"`
}

// Resource is a reference to a loaded resource instance, carrying only the
// fields that ownership constraints inspect. A User record is owned by
// itself and a Company record is its own scope; for those subjects setting
// ID alone suffices, since constraint evaluation falls back to the record id
// when the scoped field is empty.
type Resource struct {
	ID        string `json:"id,omitempty"`
	OwnerID   string `json:"owner_id,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// Requirement is one declared (action, subject) pair an endpoint demands.
// Target, when set, points at the already-loaded resource instance so that
// ownership constraints are evaluated; when nil the check is type-level.
type Requirement struct {
	Action  Action      `json:"action"`
	Subject SubjectType `json:"subject"`
	Target  *Resource   `json:"target,omitempty"`
}

// Endpoint is the per-route metadata the guard consults. The route layer
// constructs it once at registration time and treats it as read-only.
type Endpoint struct {
	// Method is the HTTP method of the route.
	Method string `json:"method"`

	// Path is the matched route template (e.g. "/api/v1/jobs/:id"),
	// compared verbatim against catalog apiPath values on the legacy path.
	Path string `json:"path"`

	// SkipCheck bypasses authorization entirely for this endpoint.
	SkipCheck bool `json:"skip_check,omitempty"`

	// Requirements are evaluated in declaration order and short-circuit
	// on the first failure.
	Requirements []Requirement `json:"requirements,omitempty"`
}

// Code classifies the outcome of an authorization decision.
type Code string

const (
	// CodeAllow means the request is permitted.
	CodeAllow Code = "allow"

	// CodeDenyUnauthenticated means no actor was attached and the endpoint
	// requires one.
	CodeDenyUnauthenticated Code = "deny_unauthenticated"

	// CodeDenyNoRule means no ability rule satisfies a declared requirement.
	CodeDenyNoRule Code = "deny_no_rule"

	// CodeDenyNoEndpoint means the legacy fallback found no attached
	// permission matching the request's method and route template.
	CodeDenyNoEndpoint Code = "deny_no_endpoint"
)

// Verdict is the outcome of one authorization decision.
type Verdict struct {
	Allowed    bool   `json:"allowed"`
	Code       Code   `json:"code"`
	Reason     string `json:"reason,omitempty"`
	EvalTimeNs int64  `json:"eval_time_ns"`
}

func allow() *Verdict {
	return &Verdict{Allowed: true, Code: CodeAllow}
}

func deny(code Code, reason string) *Verdict {
	return &Verdict{Code: code, Reason: reason}
}
