package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/fitcoach/internal/cache"
	"github.com/briangreenhill/fitcoach/internal/render"
)

func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Modalities) != 2 || req.Modalities[0] != "image" {
			t.Errorf("unexpected modalities: %v", req.Modalities)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"choices":[{"message":{"content":"","images":[{"type":"image_url","image_url":{"url":"data:image/png;base64,%d"}}]}}]}`, hits.Load())
	}))
}

func TestGenerate(t *testing.T) {
	var hits atomic.Int32
	server := imageServer(t, &hits)
	defer server.Close()

	c := New("test-key", WithBaseURL(server.URL))
	url, err := c.Generate(context.Background(), render.ImagePrompt("- Goblet squat 3x12"))
	require.NoError(t, err)

	assert.Equal(t, "data:image/png;base64,1", url)
}

func TestGenerateUsesCache(t *testing.T) {
	var hits atomic.Int32
	server := imageServer(t, &hits)
	defer server.Close()

	lru, err := cache.NewLRU(8)
	require.NoError(t, err)
	c := New("test-key", WithBaseURL(server.URL), WithCache(lru))

	first, err := c.Generate(context.Background(), "oats with berries")
	require.NoError(t, err)
	second, err := c.Generate(context.Background(), "  Oats with berries ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGenerateMissingKey(t *testing.T) {
	var hits atomic.Int32
	server := imageServer(t, &hits)
	defer server.Close()

	c := New("", WithBaseURL(server.URL))
	_, err := c.Generate(context.Background(), "squat")

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, int32(0), hits.Load())
}

func TestGenerateEmptyPrompt(t *testing.T) {
	c := New("test-key")
	_, err := c.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream status", http.StatusInternalServerError, `{"error":"boom"}`},
		{"no image", http.StatusOK, `{"choices":[{"message":{"content":"sorry"}}]}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New("test-key", WithBaseURL(server.URL))
			_, err := c.Generate(context.Background(), "squat")
			assert.Error(t, err)
		})
	}
}

func TestBoardConcurrentWrites(t *testing.T) {
	b := NewBoard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Set(fmt.Sprintf("workout-%d", i), fmt.Sprintf("url-%d", i))
		}(i)
	}
	wg.Wait()

	all := b.All()
	assert.Len(t, all, 50)
	u, ok := b.get("workout-7")
	require.True(t, ok)
	assert.Equal(t, "url-7", u)
}

func TestBoards(t *testing.T) {
	bs, err := NewBoards(1)
	require.NoError(t, err)

	a := bs.For("plan-a")
	a.Set("diet-1", "x")
	assert.Same(t, a, bs.For("plan-a"))

	bs.For("plan-b") // evicts plan-a
	_, ok := bs.For("plan-a").get("diet-1")
	assert.False(t, ok)

	bs.Drop("plan-a")
}
