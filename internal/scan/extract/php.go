package extract

import (
	"regexp"
)

// PHP scanning is regex-based over comment-stripped text. Stripping is
// lexical, not a real tokenizer: comment-like sequences inside string
// literals are stripped too. That tradeoff is part of the contract.
var (
	phpBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	phpLineComment  = regexp.MustCompile(`(?m)//.*?$`)
	phpHashComment  = regexp.MustCompile(`(?m)#.*?$`)

	// Optional & before the name covers functions returning by reference.
	phpFunction  = regexp.MustCompile(`\bfunction\s+&?\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	phpClass     = regexp.MustCompile(`\bclass\s+([A-Za-z_][A-Za-z0-9_]*)\b`)
	phpInterface = regexp.MustCompile(`\binterface\s+([A-Za-z_][A-Za-z0-9_]*)\b`)
	phpTrait     = regexp.MustCompile(`\btrait\s+([A-Za-z_][A-Za-z0-9_]*)\b`)

	// The captured use path keeps an "as alias" clause when one is present.
	phpUse = regexp.MustCompile(`\buse\s+([A-Za-z_\\][A-Za-z0-9_\\]*(?:\s+as\s+\w+)?)\s*;`)

	// Whole include/require statements with a quoted argument, with or
	// without parentheses, captured as literal statement text.
	phpInclude = regexp.MustCompile(`\b(?:include|include_once|require|require_once)\s*\(?\s*['"][^'"]+['"]\s*\)?\s*;`)
)

// phpExtractor extracts symbols from PHP source by pattern scanning.
type phpExtractor struct{}

// NewPHPExtractor creates a new PHP extractor.
func NewPHPExtractor() *phpExtractor {
	return &phpExtractor{}
}

// Extract scans content for function, class, interface, and trait
// declarations plus use and include references. Class, interface, and trait
// names are concatenated in that order into the Classes list.
func (e *phpExtractor) Extract(content string) SymbolSet {
	stripped := phpBlockComment.ReplaceAllString(content, "")
	stripped = phpLineComment.ReplaceAllString(stripped, "")
	stripped = phpHashComment.ReplaceAllString(stripped, "")

	functions := findSubmatches(phpFunction, stripped)

	classes := findSubmatches(phpClass, stripped)
	classes = append(classes, findSubmatches(phpInterface, stripped)...)
	classes = append(classes, findSubmatches(phpTrait, stripped)...)

	uses := findSubmatches(phpUse, stripped)
	includes := phpInclude.FindAllString(stripped, -1)

	return SymbolSet{
		Functions: dedupe(functions),
		Classes:   dedupe(classes),
		Imports:   dedupe(uses),
		Includes:  dedupe(includes),
	}
}

// findSubmatches returns the first capture group of every match in order.
func findSubmatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
