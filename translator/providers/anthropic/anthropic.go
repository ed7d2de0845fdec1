package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"github.com/vibelingo/vibelingo/translator"
	"github.com/vibelingo/vibelingo/translator/ratelimit"
)

// Provider implements the Generator interface for Anthropic.
type Provider struct {
	client      anthropic.Client
	model       string
	rateLimiter *ratelimit.Limiter
}

// Config holds Anthropic provider configuration
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // override for tests; defaults to the public endpoint
	TPM     int    // Tokens per minute
	RPM     int    // Requests per minute
}

// DefaultConfig returns default Anthropic configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey: apiKey,
		Model:  "claude-sonnet-4-20250514",
		TPM:    80000, // Claude Sonnet default TPM
		RPM:    50,    // Claude Sonnet default RPM
	}
}

// NewProvider creates a new Anthropic provider
func NewProvider(config *Config) *Provider {
	if config == nil {
		panic("config cannot be nil")
	}

	opts := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	return &Provider{
		client:      client,
		model:       config.Model,
		rateLimiter: ratelimit.NewLimiter(config.TPM, config.RPM),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "anthropic"
}

// Generate opens a streaming message request. The API has no native schema
// constraint, so the response schema is embedded in the system prompt and the
// model is instructed to emit JSON only.
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
	system := fmt.Sprintf("Respond with a single JSON object matching this schema, and nothing else:\n%s", schema)

	s := p.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	return &stream{inner: s}, nil
}

type stream struct {
	inner *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// Next returns the next non-empty text delta, or io.EOF when the stream has
// ended.
func (s *stream) Next() (string, error) {
	for s.inner.Next() {
		event := s.inner.Current()
		ev, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		if delta, ok := ev.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
			return delta.Text, nil
		}
	}
	if err := s.inner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *stream) Close() {
	s.inner.Close()
}
