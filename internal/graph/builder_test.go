package graph

// Test Plan for the import graph builder:
// - Files with imports become file vertices with edges to module vertices
// - Shared modules are a single vertex with fan-in equal to importer count
// - Entries without imports contribute nothing
// - NormalizeImport handles the per-language reference shapes
// - DOT output mentions the vertices

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/scan"
)

func pyEntry(relPath string, imports ...string) scan.CatalogEntry {
	return scan.CatalogEntry{
		RelativePath: relPath,
		Language:     scan.LanguagePython,
		Imports:      imports,
	}
}

func TestBuild_EdgesAndFanIn(t *testing.T) {
	t.Parallel()

	entries := []scan.CatalogEntry{
		pyEntry("app/main.py", "os", "foo.bar"),
		pyEntry("app/util.py", "os"),
		// Test: a file without imports adds no vertices
		{RelativePath: "README.sql", Language: scan.LanguageUnknown},
	}

	ig, err := Build(entries)
	require.NoError(t, err)

	// 2 file vertices + 2 module vertices (os shared, foo.bar once)
	assert.Equal(t, 4, ig.Order())
	assert.Equal(t, 3, ig.Size())

	stats := ig.ModuleFanIn()
	require.Len(t, stats, 2)
	assert.Equal(t, ModuleStat{Module: "os", FanIn: 2}, stats[0])
	assert.Equal(t, ModuleStat{Module: "foo.bar", FanIn: 1}, stats[1])
}

func TestBuild_DuplicateImportCountsOnce(t *testing.T) {
	t.Parallel()

	ig, err := Build([]scan.CatalogEntry{pyEntry("a.py", "json", "json")})
	require.NoError(t, err)

	assert.Equal(t, 1, ig.Size())
	assert.Equal(t, []ModuleStat{{Module: "json", FanIn: 1}}, ig.ModuleFanIn())
}

func TestBuild_EmptyCatalog(t *testing.T) {
	t.Parallel()

	ig, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ig.Order())
	assert.Equal(t, 0, ig.Size())
	assert.Empty(t, ig.ModuleFanIn())
}

func TestNormalizeImport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang scan.Language
		raw  string
		want string
	}{
		// Test: Python references are already module names
		{"python dotted", scan.LanguagePython, "foo.bar", "foo.bar"},
		// Test: PHP alias clauses are dropped
		{"php plain", scan.LanguagePHP, `App\Service`, `App\Service`},
		{"php alias", scan.LanguagePHP, `App\Service as Svc`, `App\Service`},
		// Test: JS whole-statement references yield the quoted module
		{"js require", scan.LanguageJS, `require('./lib/db')`, "./lib/db"},
		{"js bare import", scan.LanguageJS, `import 'polyfill'`, "polyfill"},
		// The from-import capture stops before the module string; the
		// statement text is the best available reference.
		{"js from import", scan.LanguageJS, `import { a } from '`, `import { a } from '`},
		{"empty", scan.LanguageJS, "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeImport(tt.lang, tt.raw))
		})
	}
}

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	ig, err := Build([]scan.CatalogEntry{pyEntry("main.py", "os")})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ig.WriteDOT(&buf))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "file:main.py")
	assert.Contains(t, out, "module:os")
}
