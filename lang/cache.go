package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// normalized caches the normalized form of every source parsed so far,
// keyed by the xxh3 hash of the raw source. Only strings are cached; each
// parse builds a new tree.
var normalized sync.Map // map[uint64]string

// normalize returns the normalized src and whether it came from the cache.
func normalize(src string, cached bool) (string, bool) {
	if !cached {
		return Normalize(src), false
	}

	key := xxh3.HashString(src)
	if text, ok := normalized.Load(key); ok {
		return text.(string), true
	}

	text, _ := normalized.LoadOrStore(key, Normalize(src))

	return text.(string), false
}

// ClearCache drops every cached normalized source.
func ClearCache() {
	normalized.Clear()
}
