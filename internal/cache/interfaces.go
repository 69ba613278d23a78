// Package cache provides a small in-process cache for generated assets
// with TTL-based expiration.
package cache

import "time"

// Entry represents a cached value with metadata
type Entry struct {
	Value     string    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Reader defines the interface for reading cache entries
type Reader interface {
	// Read retrieves an entry by key. It returns false when the key is
	// unknown or older than maxAge; maxAge <= 0 disables the age check.
	Read(key string, maxAge time.Duration) (*Entry, bool)
}

// Writer defines the interface for writing cache entries
type Writer interface {
	// Write stores an entry, stamping FetchedAt
	Write(key string, entry *Entry) error
}

// Restorer stores an entry keeping its FetchedAt, for copying between caches
type Restorer interface {
	Restore(key string, entry *Entry) error
}

// KeyGenerator generates cache keys from request parameters
type KeyGenerator interface {
	KeyFor(namespace, input string) string
}

// Cache is the main interface that combines all cache operations
type Cache interface {
	Reader
	Writer
	KeyGenerator
}
