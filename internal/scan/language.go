package scan

// Language identifies the extraction route for a file. It is a closed set:
// every value a scan can produce is one of the constants below, and
// LanguageUnknown is an explicit member rather than a fallthrough.
type Language string

const (
	LanguagePython   Language = "python"
	LanguagePHP      Language = "php"
	LanguageJS       Language = "js"
	LanguageNotebook Language = "ipynb"
	LanguageUnknown  Language = "unknown"
)

// languageByExtension maps lower-cased extensions to languages. JSX is
// treated as JS for name extraction, and TypeScript as a name-only JS
// superset.
var languageByExtension = map[string]Language{
	".py":    LanguagePython,
	".php":   LanguagePHP,
	".js":    LanguageJS,
	".jsx":   LanguageJS,
	".ts":    LanguageJS,
	".tsx":   LanguageJS,
	".ipynb": LanguageNotebook,
}

// DetectLanguage returns the language for a lower-cased extension.
// Extensions without an extraction route map to LanguageUnknown; such files
// still get file-level statistics, just no symbols.
func DetectLanguage(ext string) Language {
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	return LanguageUnknown
}
