package api

import (
	"container/list"
	"sync"
	"time"

	"github.com/codemix-nlp/codemix/internal/freq"
)

type cachedList struct {
	key       string
	entries   []freq.Entry
	expiresAt time.Time
}

// ListCache is a small LRU over stored wordlists so repeated reads skip
// postgres. A ttl of zero disables expiry.
type ListCache struct {
	capacity int
	ttl      time.Duration
	cache    map[string]*list.Element
	list     *list.List
	mu       sync.RWMutex
}

func NewListCache(capacity int, ttl time.Duration) *ListCache {
	c := &ListCache{
		capacity: capacity,
		ttl:      ttl,
		cache:    make(map[string]*list.Element),
		list:     list.New(),
	}

	go c.cleanup()
	return c
}

func (c *ListCache) Get(key string) ([]freq.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		item := elem.Value.(*cachedList)
		if c.ttl > 0 && time.Now().After(item.expiresAt) {
			c.removeElement(elem)
			return nil, false
		}

		c.list.MoveToFront(elem)
		return item.entries, true
	}
	return nil, false
}

func (c *ListCache) Put(key string, entries []freq.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	expiresAt := now.Add(c.ttl)
	if c.ttl == 0 {
		expiresAt = time.Time{}
	}

	if elem, ok := c.cache[key]; ok {
		c.list.MoveToFront(elem)
		item := elem.Value.(*cachedList)
		item.entries = entries
		item.expiresAt = expiresAt
		return
	}

	if c.list.Len() >= c.capacity {
		elem := c.list.Back()
		if elem != nil {
			c.removeElement(elem)
		}
	}

	elem := c.list.PushFront(&cachedList{key, entries, expiresAt})
	c.cache[key] = elem
}

func (c *ListCache) removeElement(elem *list.Element) {
	delete(c.cache, elem.Value.(*cachedList).key)
	c.list.Remove(elem)
}

func (c *ListCache) cleanup() {
	if c.ttl == 0 {
		return
	}

	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		var toRemove []*list.Element

		for elem := c.list.Back(); elem != nil; elem = elem.Prev() {
			item := elem.Value.(*cachedList)
			if now.After(item.expiresAt) {
				toRemove = append(toRemove, elem)
			} else {
				break
			}
		}

		for _, elem := range toRemove {
			c.removeElement(elem)
		}
		c.mu.Unlock()
	}
}

// GetOrLoad returns the cached entries for key, calling load and caching
// its result on a miss. Load errors are returned without caching.
func (c *ListCache) GetOrLoad(key string, load func() ([]freq.Entry, error)) ([]freq.Entry, error) {
	if entries, ok := c.Get(key); ok {
		return entries, nil
	}
	entries, err := load()
	if err != nil {
		return nil, err
	}
	c.Put(key, entries)
	return entries, nil
}

func (c *ListCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.list.Len()
}

func (c *ListCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*list.Element)
	c.list.Init()
}
