// Package middleware provides HTTP authorization middleware for gatekeeper.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/hireverse/gatekeeper"
)

// Require enforces authorization for one route. It builds the endpoint
// metadata once at registration time, resolves the actor from the request
// context (attached by the authentication middleware), and converts a deny
// verdict into a 401 or 403 JSON response.
func Require(auth *gatekeeper.Authorizer, method, path string, reqs ...gatekeeper.Requirement) forge.Middleware {
	ep := &gatekeeper.Endpoint{
		Method:       method,
		Path:         path,
		Requirements: reqs,
	}
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			actor := gatekeeper.ActorFromContext(ctx.Context())
			v := auth.Authorize(ctx.Context(), actor, ep)
			if !v.Allowed {
				return denyResponse(ctx, v)
			}
			return next(ctx)
		}
	}
}

// Skip marks a route as exempt from authorization. It exists so public
// routes read the same way as guarded ones at registration sites.
func Skip() forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			return next(ctx)
		}
	}
}

func denyResponse(ctx forge.Context, v *gatekeeper.Verdict) error {
	status := 403
	if v.Code == gatekeeper.CodeDenyUnauthenticated {
		status = 401
	}
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(status)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": v.Reason})
}
