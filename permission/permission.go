// Package permission defines the catalog Permission entity and its store
// interface. A permission is an atomic capability: one HTTP method on one
// route template, tagged with the module it belongs to.
package permission

import (
	"errors"
	"time"

	"github.com/hireverse/gatekeeper/id"
)

var (
	// ErrNotFound is returned when a permission cannot be found.
	ErrNotFound = errors.New("gatekeeper: permission not found")

	// ErrConflict is returned when a permission's (apiPath, method) pair
	// already exists elsewhere in the catalog.
	ErrConflict = errors.New("gatekeeper: permission already exists for api path and method")
)

// Permission represents one capability in the catalog.
type Permission struct {
	ID          id.PermissionID `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	APIPath     string          `json:"apiPath" db:"api_path"`
	Method      string          `json:"method" db:"method"`
	Module      string          `json:"module" db:"module"`
	Description string          `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing permissions.
type ListFilter struct {
	Module string `json:"module,omitempty"`
	Method string `json:"method,omitempty"`
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
