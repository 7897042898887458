package scan

import (
	"path/filepath"
	"strings"
)

// markerSampleChars is how much decoded text the content-marker heuristic
// inspects.
const markerSampleChars = 2000

// decision is a single rule's verdict. A rule either settles the file's
// fate or passes it to the next rule.
type decision int

const (
	decisionNext decision = iota
	decisionCode
	decisionNotCode
)

// rule is one layer of the classification. Rules run in declaration order
// and the first verdict wins.
type rule struct {
	name   string
	decide func(path string) decision
}

// Classifier decides whether a file should be scanned as code. The layers,
// in order: basename allow-list, binary extension deny-list, code extension
// allow-list gated on text content, and a content-marker heuristic for
// everything else.
type Classifier struct {
	tables *Tables
	rules  []rule
}

// NewClassifier builds a classifier over the given tables. Pass
// DefaultTables() unless the caller needs custom ones.
func NewClassifier(tables *Tables) *Classifier {
	c := &Classifier{tables: tables}
	c.rules = []rule{
		{name: "name-only allow-list", decide: c.decideNameOnly},
		{name: "binary extension deny-list", decide: c.decideBinaryExtension},
		{name: "code extension allow-list", decide: c.decideCodeExtension},
		{name: "content markers", decide: c.decideContentMarkers},
	}
	return c
}

// IsCodeFile reports whether the file at path should be treated as code.
func (c *Classifier) IsCodeFile(path string) bool {
	isCode, _ := c.Classify(path)
	return isCode
}

// Classify runs the rule list and also returns the name of the rule that
// settled the verdict, which keeps the precedence auditable.
func (c *Classifier) Classify(path string) (bool, string) {
	for _, r := range c.rules {
		switch r.decide(path) {
		case decisionCode:
			return true, r.name
		case decisionNotCode:
			return false, r.name
		}
	}
	return false, "default"
}

func (c *Classifier) decideNameOnly(path string) decision {
	if c.tables.NameOnlyCode[filepath.Base(path)] {
		return decisionCode
	}
	return decisionNext
}

func (c *Classifier) decideBinaryExtension(path string) decision {
	if c.tables.NonCodeBinaryExts[lowerExt(path)] {
		return decisionNotCode
	}
	return decisionNext
}

func (c *Classifier) decideCodeExtension(path string) decision {
	if !c.tables.CodeExtensions[lowerExt(path)] {
		return decisionNext
	}
	// An allow-listed extension over binary content is a mislabeled or
	// corrupted file, not code.
	if IsProbablyText(path) {
		return decisionCode
	}
	return decisionNotCode
}

// decideContentMarkers is the terminal rule: files with unrecognized or
// missing extensions are classified by sniffing their leading text. The
// heuristic accepts false positives (config files that happen to contain
// braces) and false negatives (minified code).
func (c *Classifier) decideContentMarkers(path string) decision {
	if c.hasCodeMarkers(path) {
		return decisionCode
	}
	return decisionNotCode
}

// hasCodeMarkers reports whether the head of the file looks like code: a
// shebang, an import phrase, or any marker substring.
func (c *Classifier) hasCodeMarkers(path string) bool {
	if !IsProbablyText(path) {
		return false
	}

	head, ok := readTextHead(path, markerSampleChars)
	if !ok {
		return false
	}

	headLower := strings.ToLower(head)
	if strings.HasPrefix(head, "#!") || strings.Contains(headLower, "from ") || strings.Contains(headLower, "import ") {
		return true
	}

	for _, marker := range c.tables.CodeMarkers {
		if strings.Contains(headLower, marker) {
			return true
		}
	}
	return false
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
