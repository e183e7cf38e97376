package gatekeeper

import "context"

type contextKey int

const ctxKeyActor contextKey = iota

// WithActor returns a context carrying the authenticated actor.
// Middleware that decodes the access token calls this before handing the
// request down; a nil actor marks the request as anonymous.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, actor)
}

// ActorFromContext returns the actor attached to the context, or nil if
// the request is anonymous.
func ActorFromContext(ctx context.Context) *Actor {
	v, ok := ctx.Value(ctxKeyActor).(*Actor)
	if !ok {
		return nil
	}
	return v
}
