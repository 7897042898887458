package search

import (
	"context"
	"strings"
	"testing"

	"github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/scan"
	"github.com/repolens/repolens/internal/scan/extract"
)

// stubEmbedding maps texts onto fixed unit vectors so similarity ranking is
// deterministic without a network-backed embedder.
func stubEmbedding() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "parser"):
			return []float32{1, 0, 0}, nil
		case strings.Contains(lower, "render"):
			return []float32{0, 1, 0}, nil
		default:
			return []float32{0, 0, 1}, nil
		}
	}
}

func TestNewSemanticSearcher_RequiresEmbedder(t *testing.T) {
	t.Parallel()

	_, err := NewSemanticSearcher(context.Background(), testEntries(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding function is required")
}

func TestSemanticSearcher_RanksBySimilarity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	searcher, err := NewSemanticSearcher(ctx, testEntries(), stubEmbedding())
	require.NoError(t, err)
	defer searcher.Close()

	// Default limit exceeds the collection size, so all entries come back
	// ranked with the parser file first
	results, err := searcher.Query(ctx, "parser", nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "src/parser.py", results[0].RelativePath)
	assert.Equal(t, "python", results[0].Language)
	assert.InDelta(t, 1.0, results[0].Similarity, 0.001)
	assert.Contains(t, results[0].Summary, "python file")
}

func TestSemanticSearcher_LanguageFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	searcher, err := NewSemanticSearcher(ctx, testEntries(), stubEmbedding())
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Query(ctx, "render", &Options{Language: "php"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "web/render.php", results[0].RelativePath)
}

func TestSemanticSearcher_EmptyCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	searcher, err := NewSemanticSearcher(ctx, nil, stubEmbedding())
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Query(ctx, "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEntrySummary(t *testing.T) {
	t.Parallel()

	entry := scan.CatalogEntry{
		RelativePath: "notebooks/analysis.ipynb",
		Language:     scan.LanguageNotebook,
		NumLines:     12,
		Functions:    []string{"load", "plot"},
		Classes:      []string{"Model"},
		Notebook: &extract.NotebookStats{
			CodeCells:     4,
			MarkdownCells: 2,
		},
	}

	summary := entrySummary(entry)

	assert.Contains(t, summary, "notebooks/analysis.ipynb is a ipynb file with 12 lines.")
	assert.Contains(t, summary, "Functions: load, plot.")
	assert.Contains(t, summary, "Classes: Model.")
	assert.Contains(t, summary, "4 code cells and 2 markdown cells")
	assert.NotContains(t, summary, "Imports:")
}
