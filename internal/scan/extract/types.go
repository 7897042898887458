// Package extract recovers declaration names and dependency references from
// source text. One extractor per supported language, all sharing the same
// output contract: extraction never fails, it degrades to empty results.
package extract

// SymbolSet holds the names recovered from a single file. Each list is
// ordered by first occurrence in the source and contains no duplicates.
type SymbolSet struct {
	Functions []string       `json:"functions"`
	Classes   []string       `json:"classes"`
	Imports   []string       `json:"imports,omitempty"`
	Includes  []string       `json:"includes,omitempty"`
	Notebook  *NotebookStats `json:"notebook,omitempty"`
}

// NotebookStats carries notebook-level cell statistics. Present only for
// notebook files that parsed successfully.
type NotebookStats struct {
	CodeCells      int    `json:"code_cells"`
	MarkdownCells  int    `json:"markdown_cells"`
	KernelLanguage string `json:"kernel_language"`
}

// Extractor is the common contract for all language extractors.
type Extractor interface {
	// Extract scans content and returns the recovered symbols. It must not
	// return an error: malformed input yields an empty SymbolSet.
	Extract(content string) SymbolSet
}

// emptySymbolSet returns a SymbolSet with initialized name lists so callers
// serialize them as [] rather than null.
func emptySymbolSet() SymbolSet {
	return SymbolSet{
		Functions: []string{},
		Classes:   []string{},
	}
}

// dedupe removes duplicate names, keeping each name at the position of its
// first occurrence. Always returns a non-nil slice.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
