package search

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/repolens/repolens/internal/scan"
)

// Engine selects which index backs a query.
type Engine string

const (
	// EngineKeyword is the bleve full-text index over symbol names.
	EngineKeyword Engine = "keyword"
	// EngineSemantic is the chromem vector index over entry summaries.
	EngineSemantic Engine = "semantic"
)

// Options control result shaping for both engines.
type Options struct {
	// Limit caps the number of results. Values outside (0, 100] fall back
	// to the default.
	Limit int
	// Language restricts hits to entries with this language label.
	Language string
}

// DefaultOptions returns the options applied when none are provided.
func DefaultOptions() *Options {
	return &Options{
		Limit: 20,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

// Result is the engine-independent hit shape returned by the coordinator.
// Detail carries a highlighted snippet for keyword hits and the embedded
// summary for semantic hits.
type Result struct {
	RelativePath string   `json:"relative_path"`
	Language     string   `json:"language"`
	Score        float64  `json:"score"`
	Symbols      []string `json:"symbols,omitempty"`
	Detail       string   `json:"detail,omitempty"`
}

// Coordinator fronts the keyword and semantic engines behind one query
// entry point. The keyword engine is always available; the semantic engine
// exists only when an embedding function was configured.
type Coordinator struct {
	symbols  SymbolSearcher
	semantic SemanticSearcher
}

// CoordinatorConfig holds the optional pieces of a coordinator.
type CoordinatorConfig struct {
	// Embedder enables the semantic engine when set.
	Embedder chromem.EmbeddingFunc
}

// NewCoordinator builds the indexes for the given catalog entries.
func NewCoordinator(ctx context.Context, entries []scan.CatalogEntry, config CoordinatorConfig) (*Coordinator, error) {
	symbols, err := NewSymbolSearcher(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build symbol index: %w", err)
	}

	var semantic SemanticSearcher
	if config.Embedder != nil {
		semantic, err = NewSemanticSearcher(ctx, entries, config.Embedder)
		if err != nil {
			symbols.Close()
			return nil, fmt.Errorf("failed to build semantic index: %w", err)
		}
	}

	return &Coordinator{
		symbols:  symbols,
		semantic: semantic,
	}, nil
}

// Search dispatches the query to the requested engine. An empty engine
// selects keyword search.
func (c *Coordinator) Search(ctx context.Context, engine Engine, queryStr string, options *Options) ([]*Result, error) {
	switch engine {
	case EngineKeyword, Engine(""):
		hits, err := c.symbols.Search(ctx, queryStr, options)
		if err != nil {
			return nil, err
		}

		results := make([]*Result, 0, len(hits))
		for _, hit := range hits {
			detail := ""
			if len(hit.Highlights) > 0 {
				detail = hit.Highlights[0]
			}
			results = append(results, &Result{
				RelativePath: hit.RelativePath,
				Language:     hit.Language,
				Score:        hit.Score,
				Symbols:      hit.Symbols,
				Detail:       detail,
			})
		}
		return results, nil

	case EngineSemantic:
		if c.semantic == nil {
			return nil, fmt.Errorf("semantic engine not configured: an embedding function is required")
		}

		hits, err := c.semantic.Query(ctx, queryStr, options)
		if err != nil {
			return nil, err
		}

		results := make([]*Result, 0, len(hits))
		for _, hit := range hits {
			results = append(results, &Result{
				RelativePath: hit.RelativePath,
				Language:     hit.Language,
				Score:        hit.Similarity,
				Detail:       hit.Summary,
			})
		}
		return results, nil

	default:
		return nil, fmt.Errorf("unknown search engine: %q", engine)
	}
}

// Close releases resources held by both engines.
func (c *Coordinator) Close() error {
	var firstErr error
	if err := c.symbols.Close(); err != nil {
		firstErr = err
	}
	if c.semantic != nil {
		if err := c.semantic.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
