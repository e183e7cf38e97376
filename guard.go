package gatekeeper

import (
	"context"
	"fmt"
	"time"
)

// Authorize decides whether the actor may call the endpoint. This is the
// hot path: at most one store read (on a cache miss), otherwise pure
// computation. It never returns an error; every internal fault resolves to
// a deny verdict (fail-closed).
func (a *Authorizer) Authorize(ctx context.Context, actor *Actor, ep *Endpoint) *Verdict {
	start := time.Now()

	v := a.authorize(ctx, actor, ep)
	v.EvalTimeNs = time.Since(start).Nanoseconds()

	return v
}

func (a *Authorizer) authorize(ctx context.Context, actor *Actor, ep *Endpoint) *Verdict {
	// 1. Endpoint opted out of checking entirely.
	if ep == nil || ep.SkipCheck {
		return allow()
	}

	// 2. Anonymous request: an endpoint with no declared requirements is
	// public; otherwise the guest ability must cover every requirement.
	if actor == nil {
		if len(ep.Requirements) == 0 {
			return allow()
		}
		if a.config.guestEnabled() {
			guest := a.AbilityForGuest()
			for _, req := range ep.Requirements {
				if !guest.satisfies(req) {
					return deny(CodeDenyUnauthenticated, "not authenticated")
				}
			}
			return allow()
		}
		return deny(CodeDenyUnauthenticated, "not authenticated")
	}

	// 3. Super admins bypass everything.
	if actor.Role.Name == RoleSuperAdmin {
		return allow()
	}

	// 4a. No declared requirements: legacy exact (method, apiPath) match
	// against the actor's attached permission list.
	if len(ep.Requirements) == 0 {
		return a.legacyCheck(actor, ep)
	}

	// 4b. Ability check, in declaration order, first failure wins.
	ability := a.AbilityForActor(ctx, actor)
	for _, req := range ep.Requirements {
		if !ability.satisfies(req) {
			return deny(CodeDenyNoRule,
				fmt.Sprintf("you don't have permission to %s %s", req.Action, req.Subject))
		}
	}
	return allow()
}

// legacyCheck matches the request's method and path against the actor's
// attached permissions. Routes registered before requirements were declared
// per endpoint still authorize this way; the two modes are independent and
// intentionally not reconciled. Endpoint.Path is normally the matched route
// template, which compares equal to the stored apiPath; callers without a
// route layer may pass the concrete request path, which matches the stored
// template positionally.
func (a *Authorizer) legacyCheck(actor *Actor, ep *Endpoint) *Verdict {
	for _, p := range actor.Permissions {
		if p == nil {
			continue
		}
		if p.Method == ep.Method && MatchPath(p.APIPath, ep.Path) {
			return allow()
		}
	}
	return deny(CodeDenyNoEndpoint,
		fmt.Sprintf("no permission for %s %s", ep.Method, ep.Path))
}

// Enforce is Authorize for call sites that want an error instead of a
// verdict. A deny maps to ErrNotAuthenticated or ErrForbidden, wrapped with
// the verdict's reason.
func (a *Authorizer) Enforce(ctx context.Context, actor *Actor, ep *Endpoint) error {
	v := a.Authorize(ctx, actor, ep)
	if v.Allowed {
		return nil
	}
	if v.Code == CodeDenyUnauthenticated {
		return fmt.Errorf("%w: %s", ErrNotAuthenticated, v.Reason)
	}
	return fmt.Errorf("%w: %s", ErrForbidden, v.Reason)
}
