package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a configuration loader for the given root directory.
// The config file is rootDir/repolens.yml unless overridden with
// NewLoaderWithFile.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// NewLoaderWithFile creates a loader that reads an explicit config file
// instead of searching the root directory.
func NewLoaderWithFile(rootDir, configFile string) Loader {
	return &loader{rootDir: rootDir, configFile: configFile}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (REPOLENS_*, plus OPENAI_API_KEY for the secret)
// 2. Config file (repolens.yml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("repolens")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix("REPOLENS")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., REPOLENS_DOCGEN_MODEL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("scan.output_dir")
	v.BindEnv("scan.cache_capacity")
	v.BindEnv("fetch.dest_dir")
	v.BindEnv("fetch.depth")
	v.BindEnv("search.embedding_model")
	v.BindEnv("docgen.model")
	v.BindEnv("docgen.base_url")
	v.BindEnv("docgen.instruction_file")
	v.BindEnv("docgen.max_output_tokens")
	v.BindEnv("docgen.max_input_bytes")

	// The API key is a secret: env only, never written to or read from the
	// config file.
	v.BindEnv("openai_api_key", "OPENAI_API_KEY")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && l.configFile == "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers Default() values in viper so partial config files
// keep the remaining keys.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.ignore", defaults.Scan.Ignore)
	v.SetDefault("scan.output_dir", defaults.Scan.OutputDir)
	v.SetDefault("scan.cache_capacity", defaults.Scan.CacheCapacity)
	v.SetDefault("fetch.dest_dir", defaults.Fetch.DestDir)
	v.SetDefault("fetch.depth", defaults.Fetch.Depth)
	v.SetDefault("search.embedding_model", defaults.Search.EmbeddingModel)
	v.SetDefault("docgen.model", defaults.Docgen.Model)
	v.SetDefault("docgen.base_url", defaults.Docgen.BaseURL)
	v.SetDefault("docgen.instruction_file", defaults.Docgen.InstructionFile)
	v.SetDefault("docgen.max_output_tokens", defaults.Docgen.MaxOutputTokens)
	v.SetDefault("docgen.max_input_bytes", defaults.Docgen.MaxInputBytes)
}

// LoadFromDir is the common entry point: load configuration for a scan
// rooted at rootDir.
func LoadFromDir(rootDir string) (*Config, error) {
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	return NewLoader(abs).Load()
}
