// Package cache provides the single-slot expiring cache used to hold the
// verification secret for the lifetime of a warm process.
//
// A Slot holds at most one value. The value carries an explicit expiry
// timestamp derived from a Policy; storing a new value always replaces the
// previous one. Slots are safe for concurrent use and take an injectable
// clock so expiry can be driven deterministically in tests.
package cache
