package scan

import (
	"time"

	"github.com/google/uuid"
)

// Catalog is the ordered result of one scan run: one entry per scanned file,
// in traversal order. Write-once; downstream consumers only read it.
type Catalog struct {
	ID        string
	Root      string
	StartedAt time.Time
	Entries   []CatalogEntry
}

// NewCatalog creates an empty catalog for a scan of root.
func NewCatalog(root string) *Catalog {
	return &Catalog{
		ID:        uuid.New().String(),
		Root:      root,
		StartedAt: time.Now(),
		Entries:   []CatalogEntry{},
	}
}

// Append adds one entry in traversal order.
func (c *Catalog) Append(entry CatalogEntry) {
	c.Entries = append(c.Entries, entry)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}
