package gatekeeper

import "time"

// Config holds configuration for the Authorizer. Cache tuning lives with
// whatever constructs the Cache implementation (see cache.WithTTL and
// cache.WithMaxSize).
type Config struct {
	// EnableGuestAccess grants unauthenticated callers the public
	// ability (browse companies and jobs, manage newsletter
	// subscriptions). Defaults to true.
	EnableGuestAccess *bool `json:"enable_guest_access,omitempty"`
}

// DefaultCacheTTL is how long a resolved role permission set stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheMaxSize caps the number of cached role entries.
const DefaultCacheMaxSize = 100

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	t := true
	return Config{EnableGuestAccess: &t}
}

func (c Config) guestEnabled() bool { return c.EnableGuestAccess == nil || *c.EnableGuestAccess }
