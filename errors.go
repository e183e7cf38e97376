package gatekeeper

import "errors"

var (
	// ErrForbidden is returned when an actor lacks a rule satisfying a
	// declared requirement.
	ErrForbidden = errors.New("gatekeeper: forbidden")

	// ErrNotAuthenticated is returned when no actor is attached to a
	// request whose endpoint requires one.
	ErrNotAuthenticated = errors.New("gatekeeper: not authenticated")

	// ErrStoreRequired is returned by NewAuthorizer when no store is
	// configured.
	ErrStoreRequired = errors.New("gatekeeper: store is required")
)
