package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidIgnorePattern indicates an ignore glob that does not compile
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

	// ErrEmptyOutputDir indicates a missing scan output directory
	ErrEmptyOutputDir = errors.New("empty scan output directory")

	// ErrInvalidCacheCapacity indicates a non-positive cache capacity
	ErrInvalidCacheCapacity = errors.New("invalid cache capacity")

	// ErrInvalidDepth indicates a negative clone depth
	ErrInvalidDepth = errors.New("invalid fetch depth")

	// ErrEmptyModel indicates a missing model name
	ErrEmptyModel = errors.New("empty model name")

	// ErrInvalidTokenBudget indicates a non-positive token or byte budget
	ErrInvalidTokenBudget = errors.New("invalid token budget")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}
	if err := validateFetch(&cfg.Fetch); err != nil {
		errs = append(errs, err)
	}
	if err := validateSearch(&cfg.Search); err != nil {
		errs = append(errs, err)
	}
	if err := validateDocgen(&cfg.Docgen); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, err := range errs {
			messages[i] = err.Error()
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}

	return nil
}

func validateScan(cfg *ScanConfig) error {
	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err)
		}
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return ErrEmptyOutputDir
	}
	if cfg.CacheCapacity <= 0 {
		return fmt.Errorf("%w: %d (must be positive)", ErrInvalidCacheCapacity, cfg.CacheCapacity)
	}
	return nil
}

func validateFetch(cfg *FetchConfig) error {
	if cfg.Depth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, cfg.Depth)
	}
	return nil
}

func validateSearch(cfg *SearchConfig) error {
	if strings.TrimSpace(cfg.EmbeddingModel) == "" {
		return fmt.Errorf("%w: search.embedding_model", ErrEmptyModel)
	}
	return nil
}

func validateDocgen(cfg *DocgenConfig) error {
	if strings.TrimSpace(cfg.Model) == "" {
		return fmt.Errorf("%w: docgen.model", ErrEmptyModel)
	}
	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: docgen.max_output_tokens = %d", ErrInvalidTokenBudget, cfg.MaxOutputTokens)
	}
	if cfg.MaxInputBytes <= 0 {
		return fmt.Errorf("%w: docgen.max_input_bytes = %d", ErrInvalidTokenBudget, cfg.MaxInputBytes)
	}
	return nil
}
