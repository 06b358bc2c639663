// Package common provides shared utilities for Tenor
package common

import "time"

// Cache TTLs for upstream responses
const (
	TTLRealtime = 60 * time.Second
	TTLHourly   = 1 * time.Hour
	TTL6Hour    = 6 * time.Hour
	TTLDaily    = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
