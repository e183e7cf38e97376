// Package memory provides an in-memory implementation of the gatekeeper
// composite store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hireverse/gatekeeper/id"
	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
)

// Compile-time interface checks.
var (
	_ role.Store       = (*Store)(nil)
	_ permission.Store = (*Store)(nil)
)

// Store is a thread-safe in-memory store for roles and permissions.
type Store struct {
	mu sync.RWMutex

	roles           map[string]*role.Role
	permissions     map[string]*permission.Permission
	rolePermissions map[string]map[string]struct{} // roleID -> set of permIDs
	permOrder       []string                       // insertion order for stable listings
	roleOrder       []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		roles:           make(map[string]*role.Role),
		permissions:     make(map[string]*permission.Permission),
		rolePermissions: make(map[string]map[string]struct{}),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Role Store
// ──────────────────────────────────────────────────

func (s *Store) CreateRole(_ context.Context, r *role.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.roles {
		if existing.Name == r.Name {
			return fmt.Errorf("role %q: %w", r.Name, role.ErrExists)
		}
	}
	s.roles[r.ID.String()] = copyRole(r)
	s.roleOrder = append(s.roleOrder, r.ID.String())
	return nil
}

func (s *Store) GetRole(_ context.Context, roleID id.RoleID) (*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[roleID.String()]
	if !ok {
		return nil, fmt.Errorf("role %s: %w", roleID, role.ErrNotFound)
	}
	return copyRole(r), nil
}

func (s *Store) GetRoleByName(_ context.Context, name string) (*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.Name == name {
			return copyRole(r), nil
		}
	}
	return nil, fmt.Errorf("role %q: %w", name, role.ErrNotFound)
}

func (s *Store) UpdateRole(_ context.Context, r *role.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.roles[r.ID.String()]
	if !ok {
		return fmt.Errorf("role %s: %w", r.ID, role.ErrNotFound)
	}
	if existing.IsSystem && existing.Name != r.Name {
		return fmt.Errorf("role %q: %w", existing.Name, role.ErrImmutable)
	}
	for _, other := range s.roles {
		if other.ID != r.ID && other.Name == r.Name {
			return fmt.Errorf("role %q: %w", r.Name, role.ErrExists)
		}
	}
	s.roles[r.ID.String()] = copyRole(r)
	return nil
}

func (s *Store) DeleteRole(_ context.Context, roleID id.RoleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.roles[roleID.String()]
	if !ok {
		return fmt.Errorf("role %s: %w", roleID, role.ErrNotFound)
	}
	if r.IsSystem {
		return fmt.Errorf("role %q: %w", r.Name, role.ErrImmutable)
	}
	delete(s.roles, roleID.String())
	delete(s.rolePermissions, roleID.String())
	s.roleOrder = removeKey(s.roleOrder, roleID.String())
	return nil
}

func (s *Store) ListRoles(_ context.Context, filter *role.ListFilter) ([]*role.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*role.Role, 0, len(s.roles))
	for _, key := range s.roleOrder {
		r, ok := s.roles[key]
		if !ok || !matchRole(r, filter) {
			continue
		}
		result = append(result, copyRole(r))
	}
	limit, offset := 0, 0
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return paginate(result, limit, offset), nil
}

func (s *Store) CountRoles(_ context.Context, filter *role.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, r := range s.roles {
		if matchRole(r, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListRolePermissions(_ context.Context, roleID id.RoleID) ([]*permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.roles[roleID.String()]; !ok {
		return nil, fmt.Errorf("role %s: %w", roleID, role.ErrNotFound)
	}
	attached := s.rolePermissions[roleID.String()]
	result := make([]*permission.Permission, 0, len(attached))
	for _, key := range s.permOrder {
		if _, ok := attached[key]; !ok {
			continue
		}
		if p, ok := s.permissions[key]; ok {
			result = append(result, copyPermission(p))
		}
	}
	return result, nil
}

func (s *Store) AttachPermission(_ context.Context, roleID id.RoleID, permID id.PermissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID.String()]; !ok {
		return fmt.Errorf("role %s: %w", roleID, role.ErrNotFound)
	}
	if _, ok := s.permissions[permID.String()]; !ok {
		return fmt.Errorf("permission %s: %w", permID, permission.ErrNotFound)
	}
	set, ok := s.rolePermissions[roleID.String()]
	if !ok {
		set = make(map[string]struct{})
		s.rolePermissions[roleID.String()] = set
	}
	set[permID.String()] = struct{}{}
	return nil
}

func (s *Store) DetachPermission(_ context.Context, roleID id.RoleID, permID id.PermissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.rolePermissions[roleID.String()]; ok {
		delete(set, permID.String())
	}
	return nil
}

func (s *Store) SetRolePermissions(_ context.Context, roleID id.RoleID, permIDs []id.PermissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[roleID.String()]; !ok {
		return fmt.Errorf("role %s: %w", roleID, role.ErrNotFound)
	}
	set := make(map[string]struct{}, len(permIDs))
	for _, pid := range permIDs {
		if _, ok := s.permissions[pid.String()]; !ok {
			return fmt.Errorf("permission %s: %w", pid, permission.ErrNotFound)
		}
		set[pid.String()] = struct{}{}
	}
	s.rolePermissions[roleID.String()] = set
	return nil
}

// ──────────────────────────────────────────────────
// Permission Store
// ──────────────────────────────────────────────────

func (s *Store) CreatePermission(_ context.Context, p *permission.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.permissions {
		if existing.APIPath == p.APIPath && existing.Method == p.Method {
			return fmt.Errorf("%s %s: %w", p.Method, p.APIPath, permission.ErrConflict)
		}
	}
	s.permissions[p.ID.String()] = copyPermission(p)
	s.permOrder = append(s.permOrder, p.ID.String())
	return nil
}

func (s *Store) GetPermission(_ context.Context, permID id.PermissionID) (*permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.permissions[permID.String()]
	if !ok {
		return nil, fmt.Errorf("permission %s: %w", permID, permission.ErrNotFound)
	}
	return copyPermission(p), nil
}

func (s *Store) GetPermissionByPathAndMethod(_ context.Context, apiPath, method string, excludeID id.PermissionID) (*permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.permissions {
		if !excludeID.IsNil() && p.ID == excludeID {
			continue
		}
		if p.APIPath == apiPath && p.Method == method {
			return copyPermission(p), nil
		}
	}
	return nil, fmt.Errorf("permission %s %s: %w", method, apiPath, permission.ErrNotFound)
}

func (s *Store) UpdatePermission(_ context.Context, p *permission.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.permissions[p.ID.String()]; !ok {
		return fmt.Errorf("permission %s: %w", p.ID, permission.ErrNotFound)
	}
	for _, other := range s.permissions {
		if other.ID != p.ID && other.APIPath == p.APIPath && other.Method == p.Method {
			return fmt.Errorf("%s %s: %w", p.Method, p.APIPath, permission.ErrConflict)
		}
	}
	s.permissions[p.ID.String()] = copyPermission(p)
	return nil
}

func (s *Store) DeletePermission(_ context.Context, permID id.PermissionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.permissions[permID.String()]; !ok {
		return fmt.Errorf("permission %s: %w", permID, permission.ErrNotFound)
	}
	delete(s.permissions, permID.String())
	s.permOrder = removeKey(s.permOrder, permID.String())
	// Cascade: drop the permission from every role that carries it.
	for _, set := range s.rolePermissions {
		delete(set, permID.String())
	}
	return nil
}

func (s *Store) ListPermissions(_ context.Context, filter *permission.ListFilter) ([]*permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*permission.Permission, 0, len(s.permissions))
	for _, key := range s.permOrder {
		p, ok := s.permissions[key]
		if !ok || !matchPermission(p, filter) {
			continue
		}
		result = append(result, copyPermission(p))
	}
	limit, offset := 0, 0
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return paginate(result, limit, offset), nil
}

func (s *Store) CountPermissions(_ context.Context, filter *permission.ListFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.permissions {
		if matchPermission(p, filter) {
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

func matchRole(r *role.Role, filter *role.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Name != "" && r.Name != filter.Name {
		return false
	}
	if filter.IsActive != nil && r.IsActive != *filter.IsActive {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}

func matchPermission(p *permission.Permission, filter *permission.ListFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Module != "" && p.Module != filter.Module {
		return false
	}
	if filter.Method != "" && p.Method != filter.Method {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.APIPath), needle) {
			return false
		}
	}
	return true
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

func copyRole(r *role.Role) *role.Role {
	c := *r
	return &c
}

func copyPermission(p *permission.Permission) *permission.Permission {
	c := *p
	return &c
}
