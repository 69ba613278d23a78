package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheReadWrite(t *testing.T) {
	fc, err := NewFileCache(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	key := fc.KeyFor("image", "Squats")
	_, ok := fc.Read(key, time.Hour)
	assert.False(t, ok)

	require.NoError(t, fc.Write(key, &Entry{Value: "data:image/png;base64,AAAA"}))
	e, ok := fc.Read(key, time.Hour)
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", e.Value)

	entries, err := os.ReadDir(fc.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestFileCacheExpiry(t *testing.T) {
	fc, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	base := time.Now()
	fc.now = func() time.Time { return base }

	require.NoError(t, fc.Write("k", &Entry{Value: "v"}))
	fc.now = func() time.Time { return base.Add(2 * time.Hour) }

	e, ok := fc.Read("k", time.Hour)
	assert.False(t, ok)
	require.NotNil(t, e, "stale entries are still returned")
	assert.Equal(t, "v", e.Value)
}

func TestNewFileCacheRequiresDir(t *testing.T) {
	_, err := NewFileCache("")
	assert.Error(t, err)
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "image_abc", sanitizeKey("image:abc"))
	assert.Equal(t, "a_b_c", sanitizeKey("a/b\\c"))
}

func TestLayeredPromotes(t *testing.T) {
	front, err := NewLRU(4)
	require.NoError(t, err)
	back, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	l := NewLayered(front, back, zerolog.Nop())

	require.NoError(t, back.Write("k", &Entry{Value: "from disk"}))
	assert.Equal(t, 0, front.Len())

	e, ok := l.Read("k", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "from disk", e.Value)
	assert.Equal(t, 1, front.Len())
}

func TestLayeredWritesBoth(t *testing.T) {
	front, err := NewLRU(4)
	require.NoError(t, err)
	back, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	l := NewLayered(front, back, zerolog.Nop())

	key := l.KeyFor("image", "  Plank ")
	assert.Equal(t, back.KeyFor("image", "plank"), key)

	require.NoError(t, l.Write(key, &Entry{Value: "v"}))
	_, ok := front.Read(key, 0)
	assert.True(t, ok)
	_, ok = back.Read(key, 0)
	assert.True(t, ok)
}

func TestLayeredPromotionKeepsAge(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	front, err := NewLRU(4)
	require.NoError(t, err)
	front.now = clock
	back, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	back.now = clock
	l := NewLayered(front, back, zerolog.Nop())

	require.NoError(t, back.Write("k", &Entry{Value: "v"}))
	now = now.Add(20 * time.Hour)

	e, ok := l.Read("k", 24*time.Hour)
	require.True(t, ok)
	assert.Equal(t, "v", e.Value)

	promoted, ok := front.Read("k", 0)
	require.True(t, ok)
	assert.Equal(t, now.Add(-20*time.Hour), promoted.FetchedAt.UTC())

	now = now.Add(10 * time.Hour)
	_, ok = l.Read("k", 24*time.Hour)
	assert.False(t, ok, "a 30h old entry must not be served with maxAge 24h")
}
