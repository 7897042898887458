package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/repolens/repolens/internal/scan"
)

// SemanticSearcher defines the interface for vector similarity search over
// catalog entries.
type SemanticSearcher interface {
	// Query executes a semantic search for the given query string.
	// Options parameter may be nil (defaults apply).
	Query(ctx context.Context, queryStr string, options *Options) ([]*SemanticResult, error)

	// Close releases resources held by the searcher.
	Close() error
}

// SemanticResult is a single vector search hit.
type SemanticResult struct {
	RelativePath string  `json:"relative_path"`
	Language     string  `json:"language"`
	Summary      string  `json:"summary"`
	Similarity   float64 `json:"similarity"`
}

// semanticSearcher implements SemanticSearcher using chromem-go as the
// vector database. Each catalog entry becomes one document whose content is
// a prose summary of the entry's symbols.
type semanticSearcher struct {
	db         *chromem.DB
	collection *chromem.Collection
	mu         sync.RWMutex
}

// NewSemanticSearcher builds an in-memory chromem collection over the given
// entries. The embedding function is called once per entry at build time and
// once per query.
func NewSemanticSearcher(ctx context.Context, entries []scan.CatalogEntry, embed chromem.EmbeddingFunc) (SemanticSearcher, error) {
	if embed == nil {
		return nil, fmt.Errorf("embedding function is required")
	}

	db := chromem.NewDB()

	collection, err := db.CreateCollection("repolens", nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	for _, entry := range entries {
		doc := chromem.Document{
			ID:      entry.RelativePath,
			Content: entrySummary(entry),
			Metadata: map[string]string{
				"language":  string(entry.Language),
				"file_name": entry.FileName,
			},
		}

		if err := collection.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to add entry %s: %w", entry.RelativePath, err)
		}
	}

	return &semanticSearcher{
		db:         db,
		collection: collection,
	}, nil
}

// entrySummary renders a catalog entry as the prose document that gets
// embedded. Symbol names carry most of the signal, so they are spelled out
// rather than counted.
func entrySummary(entry scan.CatalogEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is a %s file with %d lines.", entry.RelativePath, entry.Language, entry.NumLines)
	if len(entry.Functions) > 0 {
		fmt.Fprintf(&b, " Functions: %s.", strings.Join(entry.Functions, ", "))
	}
	if len(entry.Classes) > 0 {
		fmt.Fprintf(&b, " Classes: %s.", strings.Join(entry.Classes, ", "))
	}
	if len(entry.Imports) > 0 {
		fmt.Fprintf(&b, " Imports: %s.", strings.Join(entry.Imports, ", "))
	}
	if len(entry.Includes) > 0 {
		fmt.Fprintf(&b, " Includes: %s.", strings.Join(entry.Includes, ", "))
	}
	if entry.Notebook != nil {
		fmt.Fprintf(&b, " Notebook with %d code cells and %d markdown cells.",
			entry.Notebook.CodeCells, entry.Notebook.MarkdownCells)
	}

	return b.String()
}

// Query executes a semantic search for the given query string.
func (s *semanticSearcher) Query(ctx context.Context, queryStr string, options *Options) ([]*SemanticResult, error) {
	if options == nil {
		options = DefaultOptions()
	}
	limit := clampLimit(options.Limit)

	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	if collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}

	// chromem rejects result counts above the collection size
	count := collection.Count()
	if count == 0 {
		return []*SemanticResult{}, nil
	}
	if limit > count {
		limit = count
	}

	var where map[string]string
	if options.Language != "" {
		where = map[string]string{"language": options.Language}
	}

	docs, err := collection.Query(ctx, queryStr, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results := make([]*SemanticResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, &SemanticResult{
			RelativePath: doc.ID,
			Language:     doc.Metadata["language"],
			Summary:      doc.Content,
			Similarity:   float64(doc.Similarity),
		})
	}

	return results, nil
}

// Close releases resources.
func (s *semanticSearcher) Close() error {
	// chromem-go doesn't require explicit cleanup
	return nil
}
