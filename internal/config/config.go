package config

// Config represents the complete repolens configuration.
// It can be loaded from repolens.yml with environment variable overrides.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Fetch  FetchConfig  `yaml:"fetch" mapstructure:"fetch"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Docgen DocgenConfig `yaml:"docgen" mapstructure:"docgen"`

	// OpenAIAPIKey is sourced from the environment only (OPENAI_API_KEY).
	// It never appears in the config file.
	OpenAIAPIKey string `yaml:"-" mapstructure:"openai_api_key"`
}

// ScanConfig controls file discovery and catalog output.
type ScanConfig struct {
	Ignore        []string `yaml:"ignore" mapstructure:"ignore"`                 // glob patterns to skip during discovery
	OutputDir     string   `yaml:"output_dir" mapstructure:"output_dir"`         // artifact directory, relative to the scan root
	CacheCapacity int      `yaml:"cache_capacity" mapstructure:"cache_capacity"` // watch-mode extraction cache entries
}

// FetchConfig controls repository acquisition.
type FetchConfig struct {
	DestDir string `yaml:"dest_dir" mapstructure:"dest_dir"` // where fetched repositories land
	Depth   int    `yaml:"depth" mapstructure:"depth"`       // clone depth; 1 = shallow
}

// SearchConfig controls the catalog search engines.
type SearchConfig struct {
	EmbeddingModel string `yaml:"embedding_model" mapstructure:"embedding_model"` // OpenAI embedding model for --semantic
}

// DocgenConfig controls LLM documentation generation.
type DocgenConfig struct {
	Model           string `yaml:"model" mapstructure:"model"`                         // OpenAI model name
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`                   // API base URL override (Azure, proxies)
	InstructionFile string `yaml:"instruction_file" mapstructure:"instruction_file"`   // system-prompt file; empty = built-in
	MaxOutputTokens int    `yaml:"max_output_tokens" mapstructure:"max_output_tokens"` // completion budget
	MaxInputBytes   int    `yaml:"max_input_bytes" mapstructure:"max_input_bytes"`     // catalog JSON truncation bound for the prompt
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Ignore: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
				"__pycache__/**",
				"dist/**",
				"build/**",
			},
			OutputDir:     ".repolens",
			CacheCapacity: 10000,
		},
		Fetch: FetchConfig{
			DestDir: "repos",
			Depth:   1,
		},
		Search: SearchConfig{
			EmbeddingModel: "text-embedding-3-small",
		},
		Docgen: DocgenConfig{
			Model:           "gpt-4o",
			MaxOutputTokens: 13107,
			MaxInputBytes:   400_000,
		},
	}
}
