package treasury

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// ttlCache is a small in-memory response cache keyed by path plus sorted
// query parameters. It is owned by a client instance; there is no package
// level state.
type ttlCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	storedAt time.Time
	ttl      time.Duration
	data     []byte
}

func newTTLCache() *ttlCache {
	return &ttlCache{entries: make(map[string]cacheEntry)}
}

// cacheKey builds a deterministic key from a path and its parameters.
func cacheKey(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(path)
	sb.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}

// get returns the cached body for key if present and unexpired.
func (c *ttlCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) >= entry.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// set stores body under key for ttl. A non-positive ttl disables caching.
func (c *ttlCache) set(key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{storedAt: time.Now(), ttl: ttl, data: body}
}
