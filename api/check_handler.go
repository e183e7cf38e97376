package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/hireverse/gatekeeper"
)

func (a *API) registerCheckRoutes(router forge.Router) error {
	g := router.Group("/v1/authz", forge.WithGroupTags("authorization"))

	if err := g.POST("/check", a.check,
		forge.WithSummary("Authorization check"),
		forge.WithDescription("Evaluates whether the actor may call the endpoint and returns the verdict."),
		forge.WithOperationID("authzCheck"),
		forge.WithRequestSchema(CheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Check result", CheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/enforce", a.enforce,
		forge.WithSummary("Enforce authorization"),
		forge.WithDescription("Returns 200 if allowed, 403 if denied."),
		forge.WithOperationID("authzEnforce"),
		forge.WithRequestSchema(CheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Allowed", CheckResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) check(ctx forge.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Method == "" || req.Path == "" {
		return nil, forge.BadRequest("method and path are required")
	}

	v := a.auth.Authorize(ctx.Context(), req.Actor, toEndpoint(req))
	resp := toCheckResponse(v)
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) enforce(ctx forge.Context, req *CheckRequest) (*CheckResponse, error) {
	if req.Method == "" || req.Path == "" {
		return nil, forge.BadRequest("method and path are required")
	}

	v := a.auth.Authorize(ctx.Context(), req.Actor, toEndpoint(req))
	resp := toCheckResponse(v)
	if !v.Allowed {
		return resp, ctx.JSON(http.StatusForbidden, resp)
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func toEndpoint(r *CheckRequest) *gatekeeper.Endpoint {
	return &gatekeeper.Endpoint{
		Method:       r.Method,
		Path:         r.Path,
		SkipCheck:    r.SkipCheck,
		Requirements: r.Requirements,
	}
}

func toCheckResponse(v *gatekeeper.Verdict) *CheckResponse {
	return &CheckResponse{
		Allowed:    v.Allowed,
		Code:       string(v.Code),
		Reason:     v.Reason,
		EvalTimeNs: v.EvalTimeNs,
	}
}
