// Package llm is the hand-off boundary to the external generation
// collaborator. The core prepares a text request and parses the reply; the
// generation itself happens on the other side of the Generator interface.
package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"reviewlens/internal/config"
)

// DefaultModel is the default Gemini model used for insight generation.
const DefaultModel = "gemini-flash-lite-latest"

// Generator is the text-in/text-out contract with the generation
// collaborator. Errors are propagated unchanged; retry policy belongs to
// the caller, not the pipeline.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Client is a Gemini-backed Generator.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a Gemini client. The API key is taken from the
// GEMINI_API_KEY environment variable first, then from configuration.
func NewClient(cfg config.GeminiConfig) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required: set GEMINI_API_KEY or ai.gemini.api_key in config")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	ctx := context.Background()
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// GenerateText sends a prompt and returns the model's text reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.modelName
}
