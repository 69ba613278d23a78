package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache implements Cache using one JSON file per entry
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the directory if needed
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("cache dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Read implements Reader
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if maxAge > 0 && fc.now().Sub(entry.FetchedAt) > maxAge {
		return &entry, false // stale
	}
	return &entry, true
}

// Write implements Writer. The file is replaced atomically.
func (fc *FileCache) Write(key string, entry *Entry) error {
	if entry == nil {
		return errors.New("nil cache entry")
	}
	e := *entry
	e.FetchedAt = fc.now()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := fc.path(key)
	tmpPath := path + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// KeyFor implements KeyGenerator
func (fc *FileCache) KeyFor(namespace, input string) string {
	return keyFor(namespace, input)
}

func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, sanitizeKey(key)+".json")
}

// sanitizeKey makes a key safe for use as a filename
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "?", "_", "*", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	return r.Replace(key)
}
