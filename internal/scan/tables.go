package scan

// Tables holds the classification tables the code-file classifier consults.
// Build once with DefaultTables at startup and share by reference; nothing
// mutates a Tables after construction.
type Tables struct {
	// CodeExtensions is the allow-list of source, script, config, and build
	// file extensions (lower-cased, dot included).
	CodeExtensions map[string]bool

	// NonCodeBinaryExts is the deny-list of known binary and media formats.
	NonCodeBinaryExts map[string]bool

	// NameOnlyCode lists extensionless basenames that always count as code.
	NameOnlyCode map[string]bool

	// CodeMarkers are substrings whose presence in a lower-cased text sample
	// marks the file as code-like.
	CodeMarkers []string
}

// DefaultTables returns the built-in classification tables.
func DefaultTables() *Tables {
	return &Tables{
		CodeExtensions: setOf(
			// Programming languages
			".py", ".ipynb",
			".js", ".jsx", ".ts", ".tsx",
			".java", ".kt", ".kts", ".groovy",
			".c", ".h", ".cpp", ".cxx", ".hpp", ".hh", ".cc",
			".go", ".rs",
			".rb", ".php",
			".cs", ".vb", ".fs",
			".swift", ".m", ".mm",
			".scala",
			".pl", ".r",

			// Shell / scripts
			".sh", ".bash", ".zsh",
			".ps1", ".psm1",
			".cmd", ".bat",

			// Data / config commonly used in codebases
			".sql",
			".yml", ".yaml", ".toml",
			".json",
			".xml",
			".ini", ".cfg", ".conf",

			// Build tools
			".gradle", ".sbt", ".mk",
		),

		NonCodeBinaryExts: setOf(
			".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".svg", ".ico",
			".pdf",
			".zip", ".rar", ".7z", ".tar", ".gz",
			".mp3", ".wav", ".flac", ".mp4", ".mkv", ".mov", ".avi",
			".exe", ".dll",
			".ttf", ".otf", ".woff", ".woff2",
			".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
		),

		NameOnlyCode: setOf("Dockerfile", "Makefile"),

		CodeMarkers: []string{
			"def ", "class ", "public ", "private ", "package ",
			"function ", "=>", "println", "console.log",
			"var ", "let ", "const ",
			"if (", "for (", "while (", "{", "}",
			"using ", "namespace ",
			// XML build/config
			"<project", "<configuration", "<properties>", "<dependencies>",
			// SQL
			"select ", "create table", "insert into", "alter table",
			// CI/CD YAML
			"pipeline:", "stages:", "jobs:", "steps:",
		},
	}
}

func setOf(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
