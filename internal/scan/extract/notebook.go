package extract

import (
	"encoding/json"
	"strings"
)

// notebookDocument is the subset of the Jupyter notebook format needed for
// extraction.
type notebookDocument struct {
	Cells    []notebookCell   `json:"cells"`
	Metadata notebookMetadata `json:"metadata"`
}

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookMetadata struct {
	Kernelspec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

// notebookExtractor extracts symbols from Jupyter notebooks by reassembling
// code cells and delegating to the Python extractor.
type notebookExtractor struct {
	python *pythonExtractor
}

// NewNotebookExtractor creates a new notebook extractor.
func NewNotebookExtractor() *notebookExtractor {
	return &notebookExtractor{
		python: NewPythonExtractor(),
	}
}

// Extract parses content as notebook JSON, records cell statistics, and runs
// the concatenated code cells through the Python extractor. A document that
// fails to parse yields empty name lists and no statistics. Notebook imports
// are not surfaced.
func (e *notebookExtractor) Extract(content string) SymbolSet {
	var nb notebookDocument
	if err := json.Unmarshal([]byte(content), &nb); err != nil {
		return emptySymbolSet()
	}

	stats := &NotebookStats{}
	var codeSources []string
	for _, cell := range nb.Cells {
		switch cell.CellType {
		case "code":
			stats.CodeCells++
			codeSources = append(codeSources, cellText(cell.Source))
		case "markdown":
			stats.MarkdownCells++
		}
	}

	stats.KernelLanguage = nb.Metadata.Kernelspec.Language
	if stats.KernelLanguage == "" {
		stats.KernelLanguage = nb.Metadata.LanguageInfo.Name
	}

	parsed := e.python.Extract(strings.Join(codeSources, "\n\n"))

	return SymbolSet{
		Functions: parsed.Functions,
		Classes:   parsed.Classes,
		Notebook:  stats,
	}
}

// cellText renders a cell source, which the notebook format stores either as
// a list of line strings or as a single string.
func cellText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return strings.Join(lines, "")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return ""
}
