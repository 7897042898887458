// Package docgen renders a scanned catalog into repository documentation
// using an LLM. The catalog is the only source of truth: the instructions
// tell the model to describe what the metadata shows and nothing more.
package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/repolens/repolens/internal/scan"
)

// DefaultInstructions is the system prompt used when no instruction file is
// configured.
const DefaultInstructions = `You are a technical writer. Generate comprehensive Markdown documentation
from the provided metadata of multiple source files, including architecture,
APIs, configuration, and usage examples. Ensure accuracy, professional tone,
and structured sections based strictly on the metadata without speculation.`

// truncationMarker is appended when the serialized catalog exceeds the
// input budget.
const truncationMarker = "\n... (catalog truncated to fit the input budget)"

// Generator turns catalog entries into a documentation prompt and runs it
// through the configured client.
type Generator struct {
	client        Client
	maxInputBytes int
}

// NewGenerator creates a generator. maxInputBytes bounds the serialized
// catalog portion of the prompt.
func NewGenerator(client Client, maxInputBytes int) *Generator {
	return &Generator{
		client:        client,
		maxInputBytes: maxInputBytes,
	}
}

// Generate produces Markdown documentation for the catalog entries.
// instructions overrides the built-in system prompt when non-empty.
func (g *Generator) Generate(ctx context.Context, entries []scan.CatalogEntry, instructions string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("catalog is empty: nothing to document")
	}
	if instructions == "" {
		instructions = DefaultInstructions
	}

	input, err := g.buildInput(entries)
	if err != nil {
		return "", err
	}

	doc, err := g.client.Generate(ctx, instructions, input)
	if err != nil {
		return "", fmt.Errorf("documentation generation failed: %w", err)
	}
	if strings.TrimSpace(doc) == "" {
		return "", fmt.Errorf("model returned empty documentation")
	}

	return doc, nil
}

// buildInput serializes the catalog and bounds it to the input budget.
// Truncation cuts at the nearest line boundary so the JSON tail is at least
// readable, and the marker makes the cut visible to the model.
func (g *Generator) buildInput(entries []scan.CatalogEntry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize catalog: %w", err)
	}

	serialized := string(data)
	if g.maxInputBytes > 0 && len(serialized) > g.maxInputBytes {
		cut := serialized[:g.maxInputBytes]
		if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
			cut = cut[:idx]
		}
		serialized = cut + truncationMarker
	}

	return "Source file metadata (JSON):\n\n" + serialized, nil
}

// LoadInstructions reads an instruction file, falling back to the built-in
// prompt when path is empty.
func LoadInstructions(path string) (string, error) {
	if path == "" {
		return DefaultInstructions, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read instruction file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("instruction file %s is empty", path)
	}

	return string(data), nil
}
