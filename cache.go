package balloons

// Cache memoizes loaded resources by key. Entries are loaded on first Get
// and never evicted. A Cache is owned by whoever builds the app and handed
// to the components that need it; there is no package-level instance.
//
// Not safe for concurrent use.
type Cache[K comparable, V any] struct {
	load    func(K) (V, error)
	entries map[K]V
}

// NewCache creates a cache that fills misses with load.
func NewCache[K comparable, V any](load func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		load:    load,
		entries: make(map[K]V),
	}
}

// Get returns the entry for key, loading it on a miss. Failed loads are not
// cached.
func (c *Cache[K, V]) Get(key K) (V, error) {
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	v, err := c.load(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.entries[key] = v
	return v, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}
