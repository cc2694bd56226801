package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Client talks to the Gemini API for streamed conversational exchanges and
// structured one-shot extractions.
type Client struct {
	client *genai.Client

	model        string
	instructions string
	grounding    bool
}

type ClientOption func(*Client)

func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithInstructions replaces the default assistant persona instruction.
func WithInstructions(instructions string) ClientOption {
	return func(c *Client) { c.instructions = instructions }
}

// WithSearchGrounding enables the google-search tool on conversational
// exchanges so responses may carry grounding citations.
func WithSearchGrounding() ClientOption {
	return func(c *Client) { c.grounding = true }
}

// NewClient creates a Gemini client. The API key is read from the
// GEMINI_API_KEY environment variable.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	apiKey, ok := os.LookupEnv("GEMINI_API_KEY")
	if !ok {
		return nil, fmt.Errorf("gemini api key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{
		client:       client,
		model:        defaultModel,
		instructions: defaultInstructions,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
