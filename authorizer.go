package gatekeeper

import (
	"context"
	"log/slog"

	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/store"
)

// methodActions maps HTTP methods to abstract actions. Methods outside the
// table yield no rule; the permission is skipped during ability building.
var methodActions = map[string]Action{
	"GET":    ActionRead,
	"POST":   ActionCreate,
	"PUT":    ActionUpdate,
	"PATCH":  ActionUpdate,
	"DELETE": ActionDelete,
}

// moduleSubjects maps catalog module tags to subject types. Permissions
// tagged with an unknown module yield no rule.
var moduleSubjects = map[string]SubjectType{
	ModuleUsers:       SubjectUser,
	ModuleCompanies:   SubjectCompany,
	ModuleJobs:        SubjectJob,
	ModuleResumes:     SubjectResume,
	ModuleFiles:       SubjectFile,
	ModuleSubscribers: SubjectSubscriber,
	ModuleRoles:       SubjectRole,
	ModulePermissions: SubjectPermission,
}

// Authorizer is the central authorization engine. It builds per-actor
// abilities from the permission catalog, keeps the role permission cache
// warm, and answers guard decisions.
type Authorizer struct {
	store  store.Store
	cache  Cache
	logger *slog.Logger
	config Config
}

// NewAuthorizer creates a new authorizer with the given options.
func NewAuthorizer(opts ...Option) (*Authorizer, error) {
	a := &Authorizer{
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		return nil, ErrStoreRequired
	}
	return a, nil
}

// Store returns the underlying composite store.
func (a *Authorizer) Store() store.Store { return a.store }

// Start performs any startup initialization.
func (a *Authorizer) Start(_ context.Context) error { return nil }

// Stop performs graceful shutdown.
func (a *Authorizer) Stop(_ context.Context) error { return nil }

// AbilityForActor materializes the actor's allow-rule set.
//
// Super admins get the single manage/all rule. Everyone else gets one rule
// per catalog permission attached to their role, narrowed by ownership where
// the subject demands it. An unknown role, or a store fault while resolving
// it, yields an empty deny-all ability rather than an error: a role deleted
// after a token was issued is an expected runtime condition.
func (a *Authorizer) AbilityForActor(ctx context.Context, actor *Actor) Ability {
	if actor == nil {
		if a.config.guestEnabled() {
			return a.AbilityForGuest()
		}
		return NewAbility(nil)
	}
	if actor.Role.Name == RoleSuperAdmin {
		return NewAbility([]Rule{{Action: ActionManage, Subject: SubjectAll}})
	}

	perms := actor.Permissions
	if len(perms) == 0 {
		perms = a.resolvePermissions(ctx, actor.Role)
	}

	rules := make([]Rule, 0, len(perms))
	for _, p := range perms {
		if rule, ok := ruleForPermission(actor, p); ok {
			rules = append(rules, rule)
		}
	}
	return NewAbility(rules)
}

// AbilityForGuest returns the fixed ability used when no actor is present
// but the endpoint permits anonymous access: browse companies and jobs,
// subscribe to and unsubscribe from the newsletter.
func (a *Authorizer) AbilityForGuest() Ability {
	return NewAbility([]Rule{
		{Action: ActionRead, Subject: SubjectCompany},
		{Action: ActionRead, Subject: SubjectJob},
		{Action: ActionCreate, Subject: SubjectSubscriber},
		{Action: ActionDelete, Subject: SubjectSubscriber},
	})
}

// InvalidateRole drops the cached permission set for one role. Writers that
// mutate a role's permissions call this before returning so the mutating
// actor's next request observes the new set.
func (a *Authorizer) InvalidateRole(ctx context.Context, roleKey string) {
	if a.cache == nil {
		return
	}
	a.cache.Invalidate(ctx, roleKey)
}

// InvalidateAllRoles drops every cached permission set. Permission catalog
// mutations use this because any role may reference the changed permission.
func (a *Authorizer) InvalidateAllRoles(ctx context.Context) {
	if a.cache == nil {
		return
	}
	a.cache.Clear(ctx)
}

// resolvePermissions returns the permission set for a role, consulting the
// cache first and the authoritative store on a miss. Any fault resolves to
// an empty set: ability building is fail-closed.
func (a *Authorizer) resolvePermissions(ctx context.Context, ref RoleRef) []*permission.Permission {
	key := ref.ID
	if key == "" {
		key = ref.Name
	}
	if key == "" {
		return nil
	}

	if a.cache != nil {
		if perms, ok := a.cache.Get(ctx, key); ok {
			return perms
		}
	}

	r, err := a.store.GetRoleByName(ctx, ref.Name)
	if err != nil {
		a.logger.Warn("role resolution failed, denying",
			slog.String("role", ref.Name),
			slog.String("error", err.Error()),
		)
		return nil
	}

	perms, err := a.store.ListRolePermissions(ctx, r.ID)
	if err != nil {
		a.logger.Warn("role permission load failed, denying",
			slog.String("role", ref.Name),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if a.cache != nil {
		a.cache.Set(ctx, key, perms)
	}
	return perms
}

// ruleForPermission maps one catalog permission to an allow-rule for the
// given actor, applying the subject-specific ownership narrowing. The
// second return is false when the permission's method or module has no
// mapping.
func ruleForPermission(actor *Actor, p *permission.Permission) (Rule, bool) {
	action, ok := methodActions[p.Method]
	if !ok {
		return Rule{}, false
	}
	subject, ok := moduleSubjects[p.Module]
	if !ok {
		return Rule{}, false
	}
	return Rule{
		Action:     action,
		Subject:    subject,
		Constraint: narrowRule(actor, subject, p.Method, p.APIPath),
	}, true
}

// narrowRule returns the ownership constraint a rule carries for the given
// (subject, method) pair, or nil for an unconstrained allow.
func narrowRule(actor *Actor, subject SubjectType, method, apiPath string) *Constraint {
	hasCompany := actor.Company != nil && actor.Company.ID != ""

	switch subject {
	case SubjectUser:
		if method != "PATCH" && method != "DELETE" {
			return nil
		}
		if actor.Role.Name == RoleUser {
			// Users may only touch their own record.
			return &Constraint{Kind: OwnerEquals, Value: actor.ID}
		}
		if actor.Role.Name == RoleHR && hasCompany {
			return &Constraint{Kind: CompanyEquals, Value: actor.Company.ID}
		}
	case SubjectJob:
		if method != "POST" && method != "PATCH" && method != "DELETE" {
			return nil
		}
		if actor.Role.Name == RoleHR && hasCompany {
			return &Constraint{Kind: CompanyEquals, Value: actor.Company.ID}
		}
	case SubjectCompany:
		if method != "PATCH" && method != "DELETE" {
			return nil
		}
		if actor.Role.Name == RoleHR && hasCompany {
			// The company's own id doubles as its company reference.
			return &Constraint{Kind: CompanyEquals, Value: actor.Company.ID}
		}
	case SubjectFile:
		// GET narrows only when the route addresses a single file.
		if method != "DELETE" && !(method == "GET" && HasPathParam(apiPath)) {
			return nil
		}
		if actor.Role.Name == RoleUser {
			return &Constraint{Kind: OwnerEquals, Value: actor.ID}
		}
	}
	return nil
}
