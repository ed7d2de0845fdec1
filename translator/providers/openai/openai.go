package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/vibelingo/vibelingo/translator"
	"github.com/vibelingo/vibelingo/translator/ratelimit"
)

// Provider implements the Generator interface for OpenAI.
type Provider struct {
	client      *openai.Client
	model       string
	rateLimiter *ratelimit.Limiter
}

// Config holds OpenAI provider configuration
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // override for tests; defaults to the public endpoint
	TPM     int    // Tokens per minute
	RPM     int    // Requests per minute
}

// DefaultConfig returns default OpenAI configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey: apiKey,
		Model:  "gpt-4o",
		TPM:    90000, // GPT-4o default TPM
		RPM:    500,   // GPT-4o default RPM
	}
}

// NewProvider creates a new OpenAI provider
func NewProvider(config *Config) *Provider {
	if config == nil {
		panic("config cannot be nil")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	return &Provider{
		client:      client,
		model:       config.Model,
		rateLimiter: ratelimit.NewLimiter(config.TPM, config.RPM),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// Generate opens a streaming chat completion constrained to the response
// schema via structured outputs.
func (p *Provider) Generate(ctx context.Context, prompt string) (translator.Stream, error) {
	// Estimate tokens needed (rough estimate: 1 token ~= 4 chars)
	estimatedTokens := len(prompt) / 4
	if estimatedTokens < 100 {
		estimatedTokens = 100 // Minimum estimate
	}

	// Wait for rate limit
	if err := p.rateLimiter.Wait(ctx, estimatedTokens); err != nil {
		return nil, err
	}

	schema, err := json.Marshal(translator.ResponseSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response schema: %w", err)
	}

	s, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "translation",
				Schema: json.RawMessage(schema),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &stream{inner: s}, nil
}

type stream struct {
	inner *openai.ChatCompletionStream
}

// Next returns the next non-empty content delta, or io.EOF when the stream
// has ended.
func (s *stream) Next() (string, error) {
	for {
		resp, err := s.inner.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if fragment := resp.Choices[0].Delta.Content; fragment != "" {
			return fragment, nil
		}
	}
}

func (s *stream) Close() {
	s.inner.Close()
}
