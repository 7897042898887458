package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for the JavaScript/TypeScript extractor:
// - All five function patterns: plain, exported, function expression,
//   arrow binding, exported arrow binding
// - Class declarations
// - Import references kept as matched statement text (three forms)
// - Block and line comments stripped before matching
// - Dedup preserves first-seen order

func TestJSExtractor_ExportedAndArrowFunctions(t *testing.T) {
	t.Parallel()

	source := `export function f(){}
const g = () => {}
`

	result := NewJavaScriptExtractor().Extract(source)

	// Test: exported declarations and arrow bindings both count as functions
	assert.Equal(t, []string{"f", "g"}, result.Functions)
}

func TestJSExtractor_AllFunctionForms(t *testing.T) {
	t.Parallel()

	source := `function alpha() {}
export function beta() {}
const gamma = function() {};
let delta = async function() {};
var epsilon = (x, y) => x + y;
export const zeta = async () => {};
`

	result := NewJavaScriptExtractor().Extract(source)

	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}, result.Functions)
}

func TestJSExtractor_Classes(t *testing.T) {
	t.Parallel()

	source := `class Widget extends Base {
  render() {}
}
class Panel {}
`

	result := NewJavaScriptExtractor().Extract(source)

	assert.Equal(t, []string{"Widget", "Panel"}, result.Classes)
	// Test: methods inside class bodies are not captured as functions
	assert.Empty(t, result.Functions)
}

func TestJSExtractor_ImportStatementCapture(t *testing.T) {
	t.Parallel()

	source := `import React from 'react';
import 'side-effect.css';
const db = require('sqlite3');
`

	result := NewJavaScriptExtractor().Extract(source)

	// Test: matches are the statement text as scanned. The from-import form
	// stops at the opening quote of the module; the bare import and require
	// forms include the module string.
	assert.Equal(t, []string{
		"import React from '",
		"import 'side-effect.css'",
		"require('sqlite3')",
	}, result.Imports)
}

func TestJSExtractor_CommentsStripped(t *testing.T) {
	t.Parallel()

	source := `/* function ghost() {} */
// function lineGhost() {}
function real() {}
`

	result := NewJavaScriptExtractor().Extract(source)

	assert.Equal(t, []string{"real"}, result.Functions)
}

func TestJSExtractor_DedupPreservesFirstSeen(t *testing.T) {
	t.Parallel()

	source := `function dup() {}
function other() {}
function dup() {}
`

	result := NewJavaScriptExtractor().Extract(source)

	assert.Equal(t, []string{"dup", "other"}, result.Functions)
}

func TestJSExtractor_EmptyContent(t *testing.T) {
	t.Parallel()

	result := NewJavaScriptExtractor().Extract("")

	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Classes)
	assert.Empty(t, result.Imports)
}
