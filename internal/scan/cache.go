package scan

import (
	"fmt"
	"os"

	"github.com/maypok86/otter"
)

// cachedEntry pairs a catalog entry with the file fingerprint it was
// extracted from.
type cachedEntry struct {
	size    int64
	modTime int64
	entry   CatalogEntry
}

// ExtractionCache memoizes per-file catalog entries so unchanged files skip
// re-extraction during watch runs. Entries are keyed by path and validated
// against the file's current size and modification time on lookup, so a
// stale entry can never be served for modified content.
type ExtractionCache struct {
	cache otter.Cache[string, cachedEntry]
}

// NewExtractionCache creates a cache holding up to capacity entries.
func NewExtractionCache(capacity int) (*ExtractionCache, error) {
	cache, err := otter.MustBuilder[string, cachedEntry](capacity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction cache: %w", err)
	}
	return &ExtractionCache{cache: cache}, nil
}

// Lookup returns the cached entry for path if the file is unchanged since
// the entry was stored.
func (c *ExtractionCache) Lookup(path string) (CatalogEntry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return CatalogEntry{}, false
	}

	cached, ok := c.cache.Get(path)
	if !ok {
		return CatalogEntry{}, false
	}
	if cached.size != info.Size() || cached.modTime != info.ModTime().UnixNano() {
		return CatalogEntry{}, false
	}
	return cached.entry, true
}

// Store records the entry for path with the file's current fingerprint.
// Files that cannot be statted are not cached.
func (c *ExtractionCache) Store(path string, entry CatalogEntry) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	c.cache.Set(path, cachedEntry{
		size:    info.Size(),
		modTime: info.ModTime().UnixNano(),
		entry:   entry,
	})
}

// Invalidate drops the cached entry for path.
func (c *ExtractionCache) Invalidate(path string) {
	c.cache.Delete(path)
}

// Close releases the cache's resources.
func (c *ExtractionCache) Close() {
	c.cache.Close()
}
