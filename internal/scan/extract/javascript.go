package extract

import (
	"regexp"
)

// JavaScript/TypeScript scanning is regex-based: TypeScript is treated as a
// name-only superset of JavaScript. Method definitions inside classes,
// default-exported anonymous functions, and destructured imports are not
// captured; that is the documented limit of pattern scanning, not a bug.
var (
	jsBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	jsLineComment  = regexp.MustCompile(`(?m)//.*?$`)

	jsFunctionPatterns = []*regexp.Regexp{
		// function name(...)
		regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)\s*\(`),
		// export function name(...)
		regexp.MustCompile(`\bexport\s+function\s+([A-Za-z_$][\w$]*)\s*\(`),
		// const/let/var name = [async] function
		regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?function\b`),
		// const/let/var name = [async] (...) =>
		regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\([^\)]*\)\s*=>`),
		// export const/let/var name = [async] (...) =>
		regexp.MustCompile(`\bexport\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?\([^\)]*\)\s*=>`),
	}

	jsClass = regexp.MustCompile(`\bclass\s+([A-Za-z_$][\w$]*)\b`)

	// Import references are kept as the matched statement text rather than
	// just the module string.
	jsImportPatterns = []*regexp.Regexp{
		// import X from 'mod'
		regexp.MustCompile(`import\s+[^'"]+['"]`),
		// bare import 'mod'
		regexp.MustCompile(`import\s*['"][^'"]+['"]`),
		// require('mod')
		regexp.MustCompile(`require\(\s*['"][^'"]+['"]\s*\)`),
	}
)

// jsExtractor extracts symbols from JavaScript and TypeScript source by
// pattern scanning.
type jsExtractor struct{}

// NewJavaScriptExtractor creates a new JavaScript/TypeScript extractor.
func NewJavaScriptExtractor() *jsExtractor {
	return &jsExtractor{}
}

// Extract scans content for function declarations, function-valued variable
// bindings, arrow-function bindings, classes, and import/require references.
func (e *jsExtractor) Extract(content string) SymbolSet {
	stripped := jsBlockComment.ReplaceAllString(content, "")
	stripped = jsLineComment.ReplaceAllString(stripped, "")

	functions := []string{}
	for _, re := range jsFunctionPatterns {
		functions = append(functions, findSubmatches(re, stripped)...)
	}

	classes := findSubmatches(jsClass, stripped)

	imports := []string{}
	for _, re := range jsImportPatterns {
		imports = append(imports, re.FindAllString(stripped, -1)...)
	}

	return SymbolSet{
		Functions: dedupe(functions),
		Classes:   dedupe(classes),
		Imports:   dedupe(imports),
	}
}
