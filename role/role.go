// Package role defines the Role entity and its store interface. A role is
// a named bundle of permissions; system roles (SUPER_ADMIN) cannot be
// deleted or renamed.
package role

import (
	"errors"
	"time"

	"github.com/hireverse/gatekeeper/id"
)

var (
	// ErrNotFound is returned when a role cannot be found.
	ErrNotFound = errors.New("gatekeeper: role not found")

	// ErrExists is returned when a role with the same name already exists.
	ErrExists = errors.New("gatekeeper: role already exists")

	// ErrImmutable is returned when a delete or rename targets a system role.
	ErrImmutable = errors.New("gatekeeper: system role is immutable")
)

// Role represents a named bundle of permissions.
type Role struct {
	ID          id.RoleID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	IsSystem    bool      `json:"is_system" db:"is_system"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing roles.
type ListFilter struct {
	Name     string `json:"name,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
