package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/hireverse/gatekeeper/permission"
	"github.com/hireverse/gatekeeper/role"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, role.ErrNotFound) || errors.Is(err, permission.ErrNotFound) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, permission.ErrConflict) || errors.Is(err, role.ErrExists) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, role.ErrImmutable) {
		return forge.BadRequest(err.Error())
	}
	return err
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
