package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repolens/repolens/internal/scan"
	"github.com/repolens/repolens/internal/search"
)

// CatalogStats is the catalog_stats response shape.
type CatalogStats struct {
	TotalFiles     int            `json:"total_files"`
	TotalFunctions int            `json:"total_functions"`
	TotalClasses   int            `json:"total_classes"`
	TotalLines     int            `json:"total_lines"`
	ByLanguage     map[string]int `json:"by_language"`
}

// SymbolSearchResponse is the symbol_search response shape.
type SymbolSearchResponse struct {
	Results []*search.Result `json:"results"`
	Total   int              `json:"total"`
}

// AddCatalogStatsTool registers the catalog_stats tool. Composable: it can
// be combined with other tool registrations on the same server.
func AddCatalogStatsTool(s *server.MCPServer, entries []scan.CatalogEntry) {
	tool := mcp.NewTool(
		"catalog_stats",
		mcp.WithDescription("Summarize the scanned repository catalog: file, function, class, and line totals plus a per-language breakdown."),
	)

	s.AddTool(tool, createCatalogStatsHandler(entries))
}

func createCatalogStatsHandler(entries []scan.CatalogEntry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats := CatalogStats{
			TotalFiles: len(entries),
			ByLanguage: make(map[string]int),
		}
		for _, entry := range entries {
			stats.TotalFunctions += entry.NumFunctions
			stats.TotalClasses += entry.NumClasses
			stats.TotalLines += entry.NumLines
			stats.ByLanguage[string(entry.Language)]++
		}

		return marshalToolResult(stats)
	}
}

// AddFileMetadataTool registers the file_metadata tool.
func AddFileMetadataTool(s *server.MCPServer, entries []scan.CatalogEntry) {
	tool := mcp.NewTool(
		"file_metadata",
		mcp.WithDescription("Return the full catalog record for one file: size, line counts, functions, classes, and import references."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Root-relative path of the file (e.g., 'src/app/main.py')")),
	)

	s.AddTool(tool, createFileMetadataHandler(entries))
}

func createFileMetadataHandler(entries []scan.CatalogEntry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// The catalog is immutable, so index it once at registration.
	byPath := make(map[string]scan.CatalogEntry, len(entries))
	for _, entry := range entries {
		byPath[entry.RelativePath] = entry
	}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		path, ok := argsMap["path"].(string)
		if !ok || path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		entry, found := byPath[path]
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("no catalog entry for path: %s", path)), nil
		}

		return marshalToolResult(entry)
	}
}

// AddSymbolSearchTool registers the symbol_search tool over the keyword
// index.
func AddSymbolSearchTool(s *server.MCPServer, searcher *search.Coordinator) {
	tool := mcp.NewTool(
		"symbol_search",
		mcp.WithDescription("Search the catalog's function, class, and import names. Returns matching files ranked by relevance."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms (e.g., 'parse config', 'UserRepository')")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 20)")),
		mcp.WithString("language",
			mcp.Description("Restrict results to one language tag (python, php, js, ipynb, unknown)")),
	)

	s.AddTool(tool, createSymbolSearchHandler(searcher))
}

func createSymbolSearchHandler(searcher *search.Coordinator) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		options := search.DefaultOptions()
		if limit, ok := argsMap["limit"].(float64); ok {
			options.Limit = int(limit)
		}
		if language, ok := argsMap["language"].(string); ok {
			options.Language = language
		}

		results, err := searcher.Search(ctx, search.EngineKeyword, query, options)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		return marshalToolResult(SymbolSearchResponse{
			Results: results,
			Total:   len(results),
		})
	}
}

// marshalToolResult returns v as a JSON text result (mcp-go convention).
func marshalToolResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
