package freq

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryCounter struct {
	mu    sync.Mutex
	lists map[string]map[string]int64
}

// NewMemoryCounter keeps counts in process memory for one-shot runs and
// tests. Ordering matches the redis counter: count descending, ties by
// word ascending.
func NewMemoryCounter() Counter {
	return &memoryCounter{lists: make(map[string]map[string]int64)}
}

func (c *memoryCounter) Add(ctx context.Context, list, word string, n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	words := c.lists[list]
	if words == nil {
		words = make(map[string]int64)
		c.lists[list] = words
	}
	words[word] += n
	return nil
}

func (c *memoryCounter) Top(ctx context.Context, list string, n int64) ([]Entry, error) {
	if n <= 0 {
		return nil, errors.New("invalid count")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]Entry, 0, len(c.lists[list]))
	for word, count := range c.lists[list] {
		entries = append(entries, Entry{Word: word, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (c *memoryCounter) Len(ctx context.Context, list string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.lists[list])), nil
}

func (c *memoryCounter) Reset(ctx context.Context, list string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, list)
	return nil
}

func (c *memoryCounter) Close() error { return nil }
