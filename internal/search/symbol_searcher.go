package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/repolens/repolens/internal/scan"
)

// SymbolSearcher defines the interface for full-text keyword search over
// catalog entries.
type SymbolSearcher interface {
	// Search executes a keyword search using FTS query syntax.
	// Supports field scoping, boolean operators, phrase search, wildcards,
	// and fuzzy matching. Options parameter may be nil (defaults apply).
	Search(ctx context.Context, queryStr string, options *Options) ([]*SymbolResult, error)

	// Close releases resources held by the searcher.
	Close() error
}

// SymbolResult is a single keyword search hit with highlighting.
type SymbolResult struct {
	RelativePath string   `json:"relative_path"`
	FileName     string   `json:"file_name"`
	Language     string   `json:"language"`
	Symbols      []string `json:"symbols,omitempty"`
	Score        float64  `json:"score"`
	Highlights   []string `json:"highlights,omitempty"` // Matching snippets with <em> tags
}

// symbolSearcher implements SymbolSearcher using bleve full-text search.
type symbolSearcher struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewSymbolSearcher builds an in-memory bleve index over the given entries.
func NewSymbolSearcher(ctx context.Context, entries []scan.CatalogEntry) (SymbolSearcher, error) {
	indexMapping := buildIndexMapping()
	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	if err := indexEntries(ctx, index, entries); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index catalog entries: %w", err)
	}

	return &symbolSearcher{
		index: index,
	}, nil
}

// buildIndexMapping creates the index mapping for catalog entry documents.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	// Relative path (searchable, stored) - standard analyzer splits on
	// separators so path segments match individually
	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "standard"
	pathMapping.Store = true
	pathMapping.Index = true

	// File name (searchable, stored)
	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true
	nameMapping.Index = true

	// Language (filterable) - keyword analyzer for exact matching
	languageMapping := bleve.NewTextFieldMapping()
	languageMapping.Analyzer = "keyword"
	languageMapping.Store = true
	languageMapping.Index = true

	// Symbols (primary search target) - function and class names joined
	// into one text value so highlighting works on a plain string field
	symbolsMapping := bleve.NewTextFieldMapping()
	symbolsMapping.Analyzer = "standard"
	symbolsMapping.Store = true
	symbolsMapping.Index = true
	symbolsMapping.IncludeTermVectors = true // Enable phrase search and highlighting

	// Imports (query-only, not reconstructed into results)
	importsMapping := bleve.NewTextFieldMapping()
	importsMapping.Analyzer = "standard"
	importsMapping.Store = false
	importsMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("relative_path", pathMapping)
	docMapping.AddFieldMappingsAt("file_name", nameMapping)
	docMapping.AddFieldMappingsAt("language", languageMapping)
	docMapping.AddFieldMappingsAt("symbols", symbolsMapping)
	docMapping.AddFieldMappingsAt("imports", importsMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// indexEntries adds catalog entries to the bleve index in batches.
func indexEntries(ctx context.Context, index bleve.Index, entries []scan.CatalogEntry) error {
	const batchSize = 1000

	batch := index.NewBatch()
	for i, entry := range entries {
		// Check cancellation periodically
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		doc := entryToDocument(entry)
		if err := batch.Index(entry.RelativePath, doc); err != nil {
			return fmt.Errorf("failed to add entry %s to batch: %w", entry.RelativePath, err)
		}

		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	return nil
}

// entryToDocument converts a catalog entry to a bleve document.
func entryToDocument(entry scan.CatalogEntry) map[string]interface{} {
	symbols := make([]string, 0, len(entry.Functions)+len(entry.Classes))
	symbols = append(symbols, entry.Functions...)
	symbols = append(symbols, entry.Classes...)

	dependencies := make([]string, 0, len(entry.Imports)+len(entry.Includes))
	dependencies = append(dependencies, entry.Imports...)
	dependencies = append(dependencies, entry.Includes...)

	return map[string]interface{}{
		"relative_path": entry.RelativePath,
		"file_name":     entry.FileName,
		"language":      string(entry.Language),
		"symbols":       strings.Join(symbols, " "),
		"imports":       strings.Join(dependencies, " "),
	}
}

// Search executes a keyword search using bleve QueryStringQuery syntax.
func (s *symbolSearcher) Search(ctx context.Context, queryStr string, options *Options) ([]*SymbolResult, error) {
	if options == nil {
		options = DefaultOptions()
	}
	limit := clampLimit(options.Limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var queries []query.Query
	queries = append(queries, bleve.NewQueryStringQuery(queryStr))

	// Add language filter if specified
	if options.Language != "" {
		langQuery := bleve.NewMatchQuery(options.Language)
		langQuery.SetField("language")
		queries = append(queries, langQuery)
	}

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	searchRequest := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	highlightStyle := "html" // <em> tags
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.Style = &highlightStyle
	searchRequest.Highlight.Fields = []string{"symbols"}

	// Request stored fields for result reconstruction
	searchRequest.Fields = []string{"relative_path", "file_name", "language", "symbols"}

	searchResult, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	results := make([]*SymbolResult, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		relPath, _ := hit.Fields["relative_path"].(string)
		fileName, _ := hit.Fields["file_name"].(string)
		language, _ := hit.Fields["language"].(string)
		symbols, _ := hit.Fields["symbols"].(string)

		results = append(results, &SymbolResult{
			RelativePath: relPath,
			FileName:     fileName,
			Language:     language,
			Symbols:      strings.Fields(symbols),
			Score:        hit.Score,
			Highlights:   extractHighlights(hit.Fragments),
		})
	}

	return results, nil
}

// extractHighlights flattens bleve fragments into highlighted snippets.
// Limits to 3 highlights per result.
func extractHighlights(fragments map[string][]string) []string {
	var highlights []string

	for _, snippets := range fragments {
		highlights = append(highlights, snippets...)
	}

	if len(highlights) > 3 {
		highlights = highlights[:3]
	}

	return highlights
}

// Close releases resources held by the searcher.
func (s *symbolSearcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index.Close()
	}
	return nil
}
