package cache

import "time"

// DefaultExpiry is how long a cached value stays fresh when no expiry is configured.
const DefaultExpiry = 60 * time.Second

// Policy configures caching behavior.
type Policy struct {
	// Enabled turns caching on. When false every Get misses.
	Enabled bool

	// Expiry is how long a stored value stays fresh.
	// Default: 60s
	Expiry time.Duration
}

// DefaultPolicy returns the default caching policy.
// Enabled: true, Expiry: 60s
func DefaultPolicy() Policy {
	return Policy{
		Enabled: true,
		Expiry:  DefaultExpiry,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.Enabled
}

// EffectiveExpiry returns the expiry to use, applying the default.
func (p Policy) EffectiveExpiry() time.Duration {
	if p.Expiry <= 0 {
		return DefaultExpiry
	}
	return p.Expiry
}
