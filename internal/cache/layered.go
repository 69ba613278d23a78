package cache

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Layered reads through a fast front cache to a slower back cache and
// promotes back hits to the front.
type Layered struct {
	front Cache
	back  Cache
	log   zerolog.Logger
}

func NewLayered(front, back Cache, log zerolog.Logger) *Layered {
	return &Layered{front: front, back: back, log: log}
}

// Read implements Reader. A promoted entry keeps the age it had in the back
// cache.
func (l *Layered) Read(key string, maxAge time.Duration) (*Entry, bool) {
	if e, ok := l.front.Read(key, maxAge); ok {
		return e, true
	}
	e, ok := l.back.Read(key, maxAge)
	if !ok {
		return e, false
	}
	if err := l.promote(key, e); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("cache promote failed")
	}
	return e, true
}

func (l *Layered) promote(key string, e *Entry) error {
	if r, ok := l.front.(Restorer); ok {
		return r.Restore(key, e)
	}
	return l.front.Write(key, e)
}

// Write implements Writer
func (l *Layered) Write(key string, entry *Entry) error {
	return errors.Join(l.front.Write(key, entry), l.back.Write(key, entry))
}

// KeyFor implements KeyGenerator
func (l *Layered) KeyFor(namespace, input string) string {
	return l.front.KeyFor(namespace, input)
}
