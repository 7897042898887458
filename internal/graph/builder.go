// Package graph builds a directed import graph from a scanned catalog:
// file vertices, module vertices, and one edge per file→module import.
package graph

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/repolens/repolens/internal/scan"
)

// NodeKind distinguishes the two vertex types.
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindModule NodeKind = "module"
)

// Node is one vertex of the import graph.
type Node struct {
	ID       string // "file:<relative path>" or "module:<name>"
	Kind     NodeKind
	Label    string // relative path or module name
	Language string // empty for module nodes
}

// ModuleStat reports how many files import a module.
type ModuleStat struct {
	Module string `json:"module"`
	FanIn  int    `json:"fan_in"`
}

// ImportGraph is the built graph plus the fan-in index derived while
// building. Immutable after Build returns.
type ImportGraph struct {
	g     graph.Graph[string, *Node]
	fanIn map[string]int
	edges int
}

// Build constructs the import graph for the catalog entries. Entries without
// imports contribute nothing; a file importing the same module twice (after
// extraction dedup this cannot happen, but defend anyway) counts once.
func Build(entries []scan.CatalogEntry) (*ImportGraph, error) {
	g := graph.New(func(n *Node) string { return n.ID }, graph.Directed())

	ig := &ImportGraph{
		g:     g,
		fanIn: make(map[string]int),
	}

	for _, entry := range entries {
		if len(entry.Imports) == 0 {
			continue
		}

		fileID := "file:" + entry.RelativePath
		fileNode := &Node{
			ID:       fileID,
			Kind:     KindFile,
			Label:    entry.RelativePath,
			Language: string(entry.Language),
		}
		if err := g.AddVertex(fileNode); err != nil && err != graph.ErrVertexAlreadyExists {
			return nil, fmt.Errorf("failed to add file vertex %s: %w", fileID, err)
		}

		for _, imp := range entry.Imports {
			module := NormalizeImport(entry.Language, imp)
			if module == "" {
				continue
			}

			moduleID := "module:" + module
			moduleNode := &Node{
				ID:    moduleID,
				Kind:  KindModule,
				Label: module,
			}
			if err := g.AddVertex(moduleNode); err != nil && err != graph.ErrVertexAlreadyExists {
				return nil, fmt.Errorf("failed to add module vertex %s: %w", moduleID, err)
			}

			err := g.AddEdge(fileID, moduleID)
			switch err {
			case nil:
				ig.fanIn[module]++
				ig.edges++
			case graph.ErrEdgeAlreadyExists:
				// duplicate import within one file
			default:
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", fileID, moduleID, err)
			}
		}
	}

	return ig, nil
}

// Order returns the number of vertices.
func (ig *ImportGraph) Order() int {
	order, err := ig.g.Order()
	if err != nil {
		return 0
	}
	return order
}

// Size returns the number of edges.
func (ig *ImportGraph) Size() int {
	return ig.edges
}

// ModuleFanIn lists modules by how many files import them, most imported
// first; ties break alphabetically so output is stable.
func (ig *ImportGraph) ModuleFanIn() []ModuleStat {
	stats := make([]ModuleStat, 0, len(ig.fanIn))
	for module, count := range ig.fanIn {
		stats = append(stats, ModuleStat{Module: module, FanIn: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].FanIn != stats[j].FanIn {
			return stats[i].FanIn > stats[j].FanIn
		}
		return stats[i].Module < stats[j].Module
	})

	return stats
}

// WriteDOT renders the graph in Graphviz DOT format.
func (ig *ImportGraph) WriteDOT(w io.Writer) error {
	if err := draw.DOT(ig.g, w); err != nil {
		return fmt.Errorf("failed to render DOT: %w", err)
	}
	return nil
}

// jsModulePattern pulls the quoted module out of a captured JS import
// statement ("import x from 'mod'", "require('mod')", "import 'mod'").
var jsModulePattern = regexp.MustCompile(`['"]([^'"]+)['"]`)

// NormalizeImport reduces a raw extracted import reference to a module name.
// Python imports are already dotted names. PHP use references drop the alias
// clause. JS references are whole statement texts, so the quoted module is
// pulled out when present; references whose capture stopped before the
// module string (the from-import form) fall back to the statement text.
func NormalizeImport(lang scan.Language, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	switch lang {
	case scan.LanguagePHP:
		if idx := strings.Index(strings.ToLower(raw), " as "); idx >= 0 {
			raw = raw[:idx]
		}
		return strings.TrimSpace(raw)
	case scan.LanguageJS:
		if m := jsModulePattern.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
		return raw
	default:
		return raw
	}
}
