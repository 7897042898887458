package docgen

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Client is the narrow LLM surface the generator needs. Tests substitute a
// stub; production uses OpenAIClient.
type Client interface {
	// Generate produces text for the given system instructions and input.
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// OpenAIClient calls the OpenAI Responses API.
type OpenAIClient struct {
	client          *openai.Client
	model           string
	maxOutputTokens int
}

// OpenAIConfig configures the API client.
type OpenAIConfig struct {
	APIKey          string
	BaseURL         string // optional override for Azure or proxies
	Model           string
	MaxOutputTokens int
}

// NewOpenAIClient creates a Responses API client.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &OpenAIClient{
		client:          &client,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// Generate performs a non-streaming completion request.
func (c *OpenAIClient) Generate(ctx context.Context, instructions, input string) (string, error) {
	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(c.model),
		Instructions: openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(input),
		},
	}
	if c.maxOutputTokens > 0 {
		params.MaxOutputTokens = openai.Int(int64(c.maxOutputTokens))
	}

	result, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}

	return result.OutputText(), nil
}
