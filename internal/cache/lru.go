package cache

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU implements Cache with a fixed-size least-recently-used store
type LRU struct {
	entries *lru.Cache[string, Entry]
	now     func() time.Time
}

// NewLRU creates a cache holding at most size entries
func NewLRU(size int) (*LRU, error) {
	if size < 1 {
		return nil, errors.New("cache size must be positive")
	}
	c, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: c, now: time.Now}, nil
}

// Read implements Reader
func (c *LRU) Read(key string, maxAge time.Duration) (*Entry, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if maxAge > 0 && c.now().Sub(e.FetchedAt) > maxAge {
		return &e, false // stale
	}
	return &e, true
}

// Write implements Writer
func (c *LRU) Write(key string, entry *Entry) error {
	if entry == nil {
		return errors.New("nil cache entry")
	}
	e := *entry
	e.FetchedAt = c.now()
	c.entries.Add(key, e)
	return nil
}

// Restore implements Restorer
func (c *LRU) Restore(key string, entry *Entry) error {
	if entry == nil {
		return errors.New("nil cache entry")
	}
	c.entries.Add(key, *entry)
	return nil
}

// Len returns the number of cached entries
func (c *LRU) Len() int {
	return c.entries.Len()
}

// KeyFor implements KeyGenerator
func (c *LRU) KeyFor(namespace, input string) string {
	return keyFor(namespace, input)
}

// keyFor is shared by every Cache so layered caches agree on keys. Inputs
// differing only in case or whitespace runs share a key.
func keyFor(namespace, input string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(input), " "))
	return fmt.Sprintf("%s:%x", namespace, md5.Sum([]byte(norm)))
}
