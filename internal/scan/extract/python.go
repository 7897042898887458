package extract

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonExtractor extracts symbols from Python source using a full
// tree-sitter parse. Functions and classes are collected from module scope
// only; imports are collected from the whole tree.
type pythonExtractor struct {
	language *sitter.Language
}

// NewPythonExtractor creates a new Python extractor.
func NewPythonExtractor() *pythonExtractor {
	return &pythonExtractor{
		language: sitter.NewLanguage(python.Language()),
	}
}

// Extract parses content and returns module-level function and class names
// plus all import references. Content with syntax errors yields an empty
// SymbolSet: partial recovery from a broken parse tree is not attempted.
func (e *pythonExtractor) Extract(content string) SymbolSet {
	result := emptySymbolSet()
	result.Imports = []string{}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	source := []byte(content)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return result
	}

	var functions, classes []string
	e.collectTopLevel(root, source, &functions, &classes)

	var imports []string
	e.collectImports(root, source, &imports)

	result.Functions = dedupe(functions)
	result.Classes = dedupe(classes)
	result.Imports = dedupe(imports)
	return result
}

// collectTopLevel walks the module's direct statements and records function
// and class names. Decorated definitions are unwrapped; nested definitions
// are not visited.
func (e *pythonExtractor) collectTopLevel(root *sitter.Node, source []byte, functions, classes *[]string) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		node := child
		if node.Kind() == "decorated_definition" {
			node = node.ChildByFieldName("definition")
			if node == nil {
				continue
			}
		}

		switch node.Kind() {
		case "function_definition":
			if name := fieldText(node, "name", source); name != "" {
				*functions = append(*functions, name)
			}
		case "class_definition":
			if name := fieldText(node, "name", source); name != "" {
				*classes = append(*classes, name)
			}
		}
	}
}

// collectImports walks the entire tree so imports inside functions and
// classes are found too, matching how plain imports and from-imports differ:
// "import a.b" contributes "a.b", "from m import x" contributes "m.x", and a
// relative "from . import x" contributes bare "x".
func (e *pythonExtractor) collectImports(root *sitter.Node, source []byte, imports *[]string) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			e.collectPlainImport(n, source, imports)
		case "import_from_statement":
			e.collectFromImport(n, source, imports)
		}
		return true
	})
}

// collectPlainImport handles "import a.b, c as d" statements. Aliases are
// ignored; the imported module name is what gets recorded.
func (e *pythonExtractor) collectPlainImport(node *sitter.Node, source []byte, imports *[]string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "dotted_name":
			*imports = append(*imports, extractNodeText(child, source))
		case "aliased_import":
			if name := fieldText(child, "name", source); name != "" {
				*imports = append(*imports, name)
			}
		}
	}
}

// collectFromImport handles "from m import x, y as z" statements, recording
// qualified "m.x" names. Leading dots of a relative module are stripped; a
// bare relative import contributes the plain imported name.
func (e *pythonExtractor) collectFromImport(node *sitter.Node, source []byte, imports *[]string) {
	moduleNode := node.ChildByFieldName("module_name")
	module := ""
	if moduleNode != nil {
		module = strings.TrimLeft(extractNodeText(moduleNode, source), ".")
	}

	qualify := func(name string) string {
		if module == "" {
			return name
		}
		return module + "." + name
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			continue
		}

		switch child.Kind() {
		case "dotted_name":
			*imports = append(*imports, qualify(extractNodeText(child, source)))
		case "aliased_import":
			if name := fieldText(child, "name", source); name != "" {
				*imports = append(*imports, qualify(name))
			}
		case "wildcard_import":
			*imports = append(*imports, qualify("*"))
		}
	}
}
