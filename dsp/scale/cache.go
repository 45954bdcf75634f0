package scale

import "sync"

type cacheKey struct {
	kind Kind
	root int
}

// Cache shares built tables across goroutines. Tables are immutable once
// published, so readers never copy.
type Cache struct {
	mu     sync.RWMutex
	tables map[cacheKey]*Table
}

// NewCache creates an empty table cache.
func NewCache() *Cache {
	return &Cache{tables: make(map[cacheKey]*Table)}
}

// Table returns the cached ladder for the kind and root, building it on the
// first request.
func (c *Cache) Table(kind Kind, root int) (*Table, error) {
	root = ((root % semitonesPerOctave) + semitonesPerOctave) % semitonesPerOctave
	key := cacheKey{kind: kind, root: root}

	c.mu.RLock()
	table, ok := c.tables[key]
	c.mu.RUnlock()

	if ok {
		return table, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A concurrent builder may have won the race while we waited.
	if table, ok := c.tables[key]; ok {
		return table, nil
	}

	table, err := NewTable(kind, root)
	if err != nil {
		return nil, err
	}

	c.tables[key] = table

	return table, nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables)
}

var defaultCache = NewCache()

// DefaultTable returns a table from the process-wide cache.
func DefaultTable(kind Kind, root int) (*Table, error) {
	return defaultCache.Table(kind, root)
}
