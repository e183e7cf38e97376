// Package api provides HTTP handlers for the gatekeeper authorization
// engine's own entities: roles, the permission catalog, and debug
// authorization checks.
package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/hireverse/gatekeeper"
	"github.com/hireverse/gatekeeper/permission"
)

// API wires all gatekeeper HTTP handlers together.
type API struct {
	auth    *gatekeeper.Authorizer
	catalog *permission.Catalog
	router  forge.Router
}

// New creates an API from an Authorizer and a Forge router.
func New(auth *gatekeeper.Authorizer, router forge.Router) *API {
	return &API{
		auth:    auth,
		catalog: permission.NewCatalog(auth.Store()),
		router:  router,
	}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	if err := a.RegisterRoutes(a.router); err != nil {
		panic("gatekeeper: register routes: " + err.Error())
	}
	return a.router.Handler()
}

// RegisterRoutes registers all API routes into the given Forge router.
func (a *API) RegisterRoutes(router forge.Router) error {
	registerers := []func(forge.Router) error{
		a.registerCheckRoutes,
		a.registerRoleRoutes,
		a.registerPermissionRoutes,
	}
	for _, fn := range registerers {
		if err := fn(router); err != nil {
			return err
		}
	}
	return nil
}
