package executor

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
)

// ResultCache memoizes query results for the life of the process. Keys are
// compared byte for byte, so whitespace differences are different keys.
// There is no eviction, size bound, or TTL.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string]domain.QueryResult
	flights singleflight.Group
}

// NewResultCache creates an empty cache.
func NewResultCache() *ResultCache {
	return &ResultCache{
		results: make(map[string]domain.QueryResult),
	}
}

// GetOrCompute returns the stored result for key, or runs compute once and
// stores its result. Concurrent callers for the same key share one compute.
// Callers receive copies, so mutating a returned table cannot corrupt the
// stored one.
func (c *ResultCache) GetOrCompute(key string, compute func() (domain.QueryResult, error)) (domain.QueryResult, bool, error) {
	if result, ok := c.get(key); ok {
		return result, true, nil
	}

	hit := true
	value, err, _ := c.flights.Do(key, func() (any, error) {
		// Another flight may have stored the key between get and Do.
		if result, ok := c.get(key); ok {
			return result, nil
		}
		hit = false

		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(key, result)
		return result, nil
	})
	if err != nil {
		return domain.QueryResult{}, false, err
	}

	return value.(domain.QueryResult).Clone(), hit, nil
}

// Peek returns the stored result for key without computing.
func (c *ResultCache) Peek(key string) (domain.QueryResult, bool) {
	return c.get(key)
}

// Len returns the number of stored results.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Purge drops every stored result.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]domain.QueryResult)
}

// Forget drops the stored result for key and reports whether one was stored.
func (c *ResultCache) Forget(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.results[key]
	delete(c.results, key)
	return ok
}

func (c *ResultCache) get(key string) (domain.QueryResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.results[key]
	if !ok {
		return domain.QueryResult{}, false
	}
	return result.Clone(), true
}

func (c *ResultCache) set(key string, result domain.QueryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[key] = result.Clone()
}

var _ interfaces.ResultCache = (*ResultCache)(nil)
