package cache

import (
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	ErrNilCache = errors.New("cache: cache is nil")
	ErrDisabled = errors.New("cache: caching is disabled")
)

// Clock returns the current time. It exists so expiry can be controlled in tests.
type Clock func() time.Time
