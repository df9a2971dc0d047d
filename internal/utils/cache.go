package utils

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of entries kept by NewContentCache
const DefaultCacheSize = 4096

type contentEntry[V any] struct {
	hash  string
	value V
}

// ContentCache memoizes values derived from file contents. An entry is only
// returned while the content hash it was computed from still matches.
type ContentCache[V any] struct {
	entries *lru.Cache[string, contentEntry[V]]
}

// NewContentCache creates a cache holding at most size entries
func NewContentCache[V any](size int) (*ContentCache[V], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, contentEntry[V]](size)
	if err != nil {
		return nil, err
	}
	return &ContentCache[V]{entries: entries}, nil
}

// Get returns the value stored for key if it was computed from content
func (c *ContentCache[V]) Get(key string, content []byte) (V, bool) {
	entry, ok := c.entries.Get(key)
	if !ok || entry.hash != HashContent(content) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores value for key, tagged with the hash of content
func (c *ContentCache[V]) Set(key string, content []byte, value V) {
	c.entries.Add(key, contentEntry[V]{hash: HashContent(content), value: value})
}

// Remove drops key
func (c *ContentCache[V]) Remove(key string) {
	c.entries.Remove(key)
}

// Len returns the number of cached entries
func (c *ContentCache[V]) Len() int {
	return c.entries.Len()
}

// Purge drops every entry
func (c *ContentCache[V]) Purge() {
	c.entries.Purge()
}

// HashContent returns the hex sha256 of content
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
