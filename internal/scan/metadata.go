package scan

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/repolens/repolens/internal/scan/extract"
)

// CatalogEntry is the per-file metadata record produced by a scan. Entries
// are immutable once assembled. The conditional fields appear only for
// languages that produce them: imports for Python and JS, imports and
// includes for PHP, notebook statistics for notebooks.
type CatalogEntry struct {
	FileName      string                 `json:"file_name"`
	FilePath      string                 `json:"file_path"`
	RelativePath  string                 `json:"relative_path"`
	Extension     string                 `json:"extension"`
	Language      Language               `json:"language"`
	SizeBytes     int64                  `json:"size_bytes"`
	LastModified  string                 `json:"last_modified"`
	NumLines      int                    `json:"num_lines"`
	NumCharacters int                    `json:"num_characters"`
	NumFunctions  int                    `json:"num_functions"`
	NumClasses    int                    `json:"num_classes"`
	Functions     []string               `json:"functions"`
	Classes       []string               `json:"classes"`
	Imports       []string               `json:"imports,omitempty"`
	Includes      []string               `json:"includes,omitempty"`
	Notebook      *extract.NotebookStats `json:"notebook,omitempty"`
}

// Assembler builds CatalogEntry records from loader output, extractor
// output, and filesystem attributes.
type Assembler struct {
	rootDir    string
	dispatcher *Dispatcher
}

// NewAssembler creates an assembler for files under rootDir.
func NewAssembler(rootDir string, dispatcher *Dispatcher) *Assembler {
	return &Assembler{
		rootDir:    rootDir,
		dispatcher: dispatcher,
	}
}

// Assemble builds the record for one file. Failures downgrade the record
// instead of propagating: unreadable content scans as empty text, a file
// that vanished before stat records zero size and an empty timestamp.
func (a *Assembler) Assemble(path string) CatalogEntry {
	ext := lowerExt(path)
	lang := DetectLanguage(ext)
	content := ReadFileText(path)
	symbols := a.dispatcher.ExtractSymbols(lang, content)

	entry := CatalogEntry{
		FileName:      filepath.Base(path),
		FilePath:      absolutePath(path),
		RelativePath:  a.relativePath(path),
		Extension:     ext,
		Language:      lang,
		NumLines:      countLines(content),
		NumCharacters: utf8.RuneCountInString(content),
		NumFunctions:  len(symbols.Functions),
		NumClasses:    len(symbols.Classes),
		Functions:     symbols.Functions,
		Classes:       symbols.Classes,
		Imports:       symbols.Imports,
		Includes:      symbols.Includes,
		Notebook:      symbols.Notebook,
	}

	if info, err := os.Stat(path); err == nil {
		entry.SizeBytes = info.Size()
		entry.LastModified = info.ModTime().Format(time.RFC3339)
	}

	return entry
}

// relativePath expresses path under the scan root, falling back to the path
// itself when it cannot be made relative.
func (a *Assembler) relativePath(path string) string {
	rel, err := filepath.Rel(a.rootDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func absolutePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// countLines counts logical lines the way text editors do: every line break
// ends a line, and a non-empty tail without a trailing break still counts as
// one line. Empty content has zero lines.
func countLines(content string) int {
	if content == "" {
		return 0
	}

	lines := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines++
		case '\r':
			lines++
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
		}
	}

	last := content[len(content)-1]
	if last != '\n' && last != '\r' {
		lines++
	}
	return lines
}
