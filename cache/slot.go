package cache

import (
	"sync"
	"time"
)

// Slot is a single-value cache with an explicit expiry timestamp.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Set always replaces the held value, whether or not it has expired.
// - Get never errors; it returns (zero, false) on miss, expiry, or when disabled.
type Slot[T any] struct {
	mu        sync.RWMutex
	value     T
	present   bool
	expiresAt time.Time
	policy    Policy
	now       Clock
}

// NewSlot creates an empty slot governed by policy.
// A nil clock defaults to time.Now.
func NewSlot[T any](policy Policy, now Clock) *Slot[T] {
	if now == nil {
		now = time.Now
	}
	return &Slot[T]{
		policy: policy,
		now:    now,
	}
}

// Get returns the held value if present and unexpired.
func (s *Slot[T]) Get() (T, bool) {
	var zero T
	if s == nil || !s.policy.ShouldCache() {
		return zero, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present || !s.now().Before(s.expiresAt) {
		return zero, false
	}
	return s.value, true
}

// Peek returns the held value regardless of expiry. The bool reports whether
// any value has ever been stored since the last Invalidate.
func (s *Slot[T]) Peek() (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.present {
		return zero, false
	}
	return s.value, true
}

// Set stores value, replacing any previous value, and stamps a fresh expiry.
// The value is kept even when caching is disabled so Peek can serve it as a
// fallback; Get still misses in that case.
func (s *Slot[T]) Set(value T) error {
	if s == nil {
		return ErrNilCache
	}

	s.mu.Lock()
	s.value = value
	s.present = true
	s.expiresAt = s.now().Add(s.policy.EffectiveExpiry())
	s.mu.Unlock()

	return nil
}

// Invalidate drops the held value. Idempotent.
func (s *Slot[T]) Invalidate() {
	if s == nil {
		return
	}

	var zero T
	s.mu.Lock()
	s.value = zero
	s.present = false
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

// ExpiresAt returns the expiry timestamp of the held value, or the zero time
// when the slot is empty.
func (s *Slot[T]) ExpiresAt() time.Time {
	if s == nil {
		return time.Time{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Policy returns the slot's policy.
func (s *Slot[T]) Policy() Policy {
	return s.policy
}
