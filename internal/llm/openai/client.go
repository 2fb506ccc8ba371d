package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openailib "github.com/sashabaranov/go-openai"
)

// Client implements llm.Provider using the OpenAI-compatible protocol.
// Works with any endpoint that supports the OpenAI chat completions API.
type Client struct {
	client *openailib.Client
	config *Config
}

// GetConfig returns the client's configuration.
func (c *Client) GetConfig() *Config {
	return c.config
}

// NewClient creates a new OpenAI-compatible client.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	clientConfig := openailib.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	// Prevent indefinite hangs when the API is unresponsive; the
	// orchestrator's own per-call deadline (AGENT_LLM_TIMEOUT_SECONDS) is
	// the primary bound, this is a backstop for a misconfigured context.
	httpTimeout := time.Duration(config.HTTPTimeout) * time.Second
	clientConfig.HTTPClient = &http.Client{Timeout: httpTimeout}

	return &Client{
		client: openailib.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// NewClientFromEnv creates a client using environment variables.
func NewClientFromEnv() (*Client, error) {
	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return NewClient(config)
}

// Generate sends a single system+user prompt pair and returns the raw
// assistant reply text. No retry here — the orchestrator's DecideNode owns
// the retry-with-backoff policy; all attempts of one decision are recorded
// together as a single trace Step.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openailib.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openailib.ChatCompletionMessage{
			{Role: openailib.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openailib.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if c.config.Temperature != nil {
		req.Temperature = *c.config.Temperature
	}
	if c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from LLM")
	}
	return resp.Choices[0].Message.Content, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return fmt.Sprintf("openai-compatible (%s)", c.config.Model)
}
