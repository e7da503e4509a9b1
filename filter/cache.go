package filter

import (
	"container/list"
	"sync"
)

// lruCache keeps the most recently used compiled filters so repeated runs of
// the same --filter expression within one process skip expr compilation.
// Keys are the trimmed expression text.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	byExpr   map[string]*list.Element
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		byExpr:   make(map[string]*list.Element, capacity),
	}
}

// Get returns the compiled filter for expression and marks it as used
func (c *lruCache) Get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byExpr[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(CompiledFilter), true
}

// Put stores f under its expression, evicting the least recently used
// filter once capacity is exceeded
func (c *lruCache) Put(expression string, f CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byExpr[expression]; ok {
		el.Value = f
		c.order.MoveToFront(el)
		return
	}

	c.byExpr[expression] = c.order.PushFront(f)

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byExpr, oldest.Value.(CompiledFilter).Expression())
	}
}

func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.byExpr)
}

func (c *lruCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}
