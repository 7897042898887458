package config

// Test Plan for configuration loading and validation:
// - Defaults load without any config file present
// - Config file values override defaults
// - Environment variables override the config file
// - The OpenAI key is picked up from OPENAI_API_KEY only
// - Validation rejects bad globs, empty models, and non-positive budgets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()

	// Test: an empty directory loads pure defaults
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, ".repolens", cfg.Scan.OutputDir)
	assert.Equal(t, 10000, cfg.Scan.CacheCapacity)
	assert.Equal(t, 1, cfg.Fetch.Depth)
	assert.Equal(t, "gpt-4o", cfg.Docgen.Model)
	assert.Contains(t, cfg.Scan.Ignore, ".git/**")
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	content := `
scan:
  output_dir: .lens-out
  ignore:
    - "*.generated.go"
docgen:
  model: gpt-4o-mini
  max_output_tokens: 2048
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "repolens.yml"), []byte(content), 0644))

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, ".lens-out", cfg.Scan.OutputDir)
	assert.Equal(t, []string{"*.generated.go"}, cfg.Scan.Ignore)
	assert.Equal(t, "gpt-4o-mini", cfg.Docgen.Model)
	assert.Equal(t, 2048, cfg.Docgen.MaxOutputTokens)
	// Untouched sections keep their defaults
	assert.Equal(t, "text-embedding-3-small", cfg.Search.EmbeddingModel)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	// No t.Parallel(): mutates process environment.
	tempDir := t.TempDir()
	content := "docgen:\n  model: from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "repolens.yml"), []byte(content), 0644))

	t.Setenv("REPOLENS_DOCGEN_MODEL", "from-env")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Docgen.Model)
}

func TestLoad_OpenAIKeyFromEnvOnly(t *testing.T) {
	// No t.Parallel(): mutates process environment.
	t.Setenv("OPENAI_API_KEY", "sk-test-not-real")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-not-real", cfg.OpenAIAPIKey)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  dest_dir: mirrors\n"), 0644))

	cfg, err := NewLoaderWithFile(tempDir, path).Load()
	require.NoError(t, err)
	assert.Equal(t, "mirrors", cfg.Fetch.DestDir)
}

func TestLoad_MissingExplicitConfigFileFails(t *testing.T) {
	t.Parallel()

	_, err := NewLoaderWithFile(t.TempDir(), "/nonexistent/repolens.yml").Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		// Test: defaults are valid as-is
		{"defaults pass", func(c *Config) {}, nil},
		{"bad ignore glob", func(c *Config) { c.Scan.Ignore = []string{"[unclosed"} }, ErrInvalidIgnorePattern},
		{"empty output dir", func(c *Config) { c.Scan.OutputDir = "  " }, ErrEmptyOutputDir},
		{"zero cache capacity", func(c *Config) { c.Scan.CacheCapacity = 0 }, ErrInvalidCacheCapacity},
		{"negative depth", func(c *Config) { c.Fetch.Depth = -1 }, ErrInvalidDepth},
		{"empty embedding model", func(c *Config) { c.Search.EmbeddingModel = "" }, ErrEmptyModel},
		{"empty docgen model", func(c *Config) { c.Docgen.Model = "" }, ErrEmptyModel},
		{"zero output tokens", func(c *Config) { c.Docgen.MaxOutputTokens = 0 }, ErrInvalidTokenBudget},
		{"zero input bytes", func(c *Config) { c.Docgen.MaxInputBytes = 0 }, ErrInvalidTokenBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
		})
	}
}
