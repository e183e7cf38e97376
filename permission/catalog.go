package permission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hireverse/gatekeeper/id"
)

// Catalog wraps a Store with the uniqueness rules of the permission
// catalog: at most one permission per (apiPath, method) pair.
type Catalog struct {
	store Store
}

// NewCatalog creates a catalog backed by the given store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Create registers a new permission after checking that its
// (apiPath, method) pair is not already taken.
func (c *Catalog) Create(ctx context.Context, p *Permission) error {
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	existing, err := c.store.GetPermissionByPathAndMethod(ctx, p.APIPath, p.Method, id.Nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s %s", ErrConflict, p.Method, p.APIPath)
	}
	if p.ID.IsNil() {
		p.ID = id.NewPermissionID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return c.store.CreatePermission(ctx, p)
}

// Update persists changes to a permission. The (apiPath, method) pair may
// change, but only to one that no other permission holds.
func (c *Catalog) Update(ctx context.Context, p *Permission) error {
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	existing, err := c.store.GetPermissionByPathAndMethod(ctx, p.APIPath, p.Method, p.ID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s %s", ErrConflict, p.Method, p.APIPath)
	}
	p.UpdatedAt = time.Now()
	return c.store.UpdatePermission(ctx, p)
}

// Get retrieves a permission by id.
func (c *Catalog) Get(ctx context.Context, permissionID id.PermissionID) (*Permission, error) {
	return c.store.GetPermission(ctx, permissionID)
}

// Delete removes a permission from the catalog. The store detaches it
// from every role that carries it.
func (c *Catalog) Delete(ctx context.Context, permissionID id.PermissionID) error {
	return c.store.DeletePermission(ctx, permissionID)
}

// List lists permissions matching the filter.
func (c *Catalog) List(ctx context.Context, filter *ListFilter) ([]*Permission, error) {
	return c.store.ListPermissions(ctx, filter)
}

// Count counts permissions matching the filter.
func (c *Catalog) Count(ctx context.Context, filter *ListFilter) (int64, error) {
	return c.store.CountPermissions(ctx, filter)
}

// FindByPathAndMethod looks up the permission registered for a route.
func (c *Catalog) FindByPathAndMethod(ctx context.Context, apiPath, method string) (*Permission, error) {
	return c.store.GetPermissionByPathAndMethod(ctx, strings.TrimSpace(apiPath), strings.ToUpper(strings.TrimSpace(method)), id.Nil)
}

func normalize(p *Permission) {
	p.Name = strings.TrimSpace(p.Name)
	p.APIPath = strings.TrimSpace(p.APIPath)
	p.Method = strings.ToUpper(strings.TrimSpace(p.Method))
	p.Module = strings.ToUpper(strings.TrimSpace(p.Module))
}

func validate(p *Permission) error {
	if p.Name == "" {
		return errors.New("gatekeeper: permission name is required")
	}
	if p.APIPath == "" || !strings.HasPrefix(p.APIPath, "/") {
		return errors.New("gatekeeper: permission apiPath must start with /")
	}
	switch p.Method {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
	default:
		return fmt.Errorf("gatekeeper: unsupported method %q", p.Method)
	}
	if p.Module == "" {
		return errors.New("gatekeeper: permission module is required")
	}
	return nil
}
