package imagegen

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Board maps item keys ("workout-3", "diet-7") to generated image URLs.
// Concurrent requests each write their own key.
type Board struct {
	mu   sync.RWMutex
	urls map[string]string
}

func NewBoard() *Board {
	return &Board{urls: make(map[string]string)}
}

func (b *Board) Set(key, url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.urls[key] = url
}

func (b *Board) get(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u, ok := b.urls[key]
	return u, ok
}

// All returns a copy of every key and URL.
func (b *Board) All() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.urls))
	for k, v := range b.urls {
		out[k] = v
	}
	return out
}

// Boards holds one Board per generated plan, dropping the least recently
// used plan when full.
type Boards struct {
	mu     sync.Mutex
	boards *lru.Cache[string, *Board]
}

func NewBoards(size int) (*Boards, error) {
	c, err := lru.New[string, *Board](size)
	if err != nil {
		return nil, err
	}
	return &Boards{boards: c}, nil
}

// For returns the board for planID, creating it if needed.
func (bs *Boards) For(planID string) *Board {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	if b, ok := bs.boards.Get(planID); ok {
		return b
	}
	b := NewBoard()
	bs.boards.Add(planID, b)
	return b
}

// Drop forgets a plan's images.
func (bs *Boards) Drop(planID string) {
	bs.boards.Remove(planID)
}
