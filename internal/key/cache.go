package key

import (
	"sync"

	"github.com/PolarWolf314/endec/internal/strategy"
)

type cacheKey struct {
	salt    Salt
	version string
}

// Cache holds stretched keys for one batch so files sharing a salt pay
// the stretch cost once. Entries are keyed by salt and strategy version.
// A Cache is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	keys   map[cacheKey]*StretchKey
	hits   int
	misses int
}

func NewCache() *Cache {
	return &Cache{keys: make(map[cacheKey]*StretchKey)}
}

// Get returns the stretched key for k, salt and st, stretching on a miss.
// The caller owns the returned handle and must Destroy it.
func (c *Cache) Get(k Key, salt Salt, st strategy.Strategy) (*StretchKey, error) {
	ck := cacheKey{salt: salt, version: st.Version().String()}

	c.mu.Lock()
	defer c.mu.Unlock()

	if sk, ok := c.keys[ck]; ok {
		c.hits++
		return sk.Clone(), nil
	}

	sk, err := Stretch(k, salt, st)
	if err != nil {
		return nil, err
	}
	c.misses++
	c.keys[ck] = sk
	return sk.Clone(), nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Close releases every cached key.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ck, sk := range c.keys {
		sk.Destroy()
		delete(c.keys, ck)
	}
}
