package scan

import (
	"github.com/repolens/repolens/internal/scan/extract"
)

// Dispatcher routes file content to the extractor registered for its
// language. One instance is safe to reuse across files; extractors hold no
// per-file state.
type Dispatcher struct {
	python   extract.Extractor
	php      extract.Extractor
	js       extract.Extractor
	notebook extract.Extractor
}

// NewDispatcher creates a dispatcher with all language extractors wired.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		python:   extract.NewPythonExtractor(),
		php:      extract.NewPHPExtractor(),
		js:       extract.NewJavaScriptExtractor(),
		notebook: extract.NewNotebookExtractor(),
	}
}

// ExtractSymbols runs the extractor for lang over content. Every language in
// the enumeration is handled here; unknown files get an empty SymbolSet so
// they still carry file-level statistics downstream.
func (d *Dispatcher) ExtractSymbols(lang Language, content string) extract.SymbolSet {
	switch lang {
	case LanguagePython:
		return d.python.Extract(content)
	case LanguagePHP:
		return d.php.Extract(content)
	case LanguageJS:
		return d.js.Extract(content)
	case LanguageNotebook:
		return d.notebook.Extract(content)
	case LanguageUnknown:
		return extract.SymbolSet{Functions: []string{}, Classes: []string{}}
	default:
		return extract.SymbolSet{Functions: []string{}, Classes: []string{}}
	}
}
