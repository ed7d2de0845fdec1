package gemini

import (
	"context"
	"fmt"
	"io"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/vibelingo/vibelingo/translator"
	"github.com/vibelingo/vibelingo/translator/ratelimit"
)

// Provider implements the Generator interface for Google Gemini.
type Provider struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	rateLimiter *ratelimit.Limiter
}

// Config holds Gemini provider configuration
type Config struct {
	APIKey string
	Model  string
	TPM    int // Tokens per minute
	RPM    int // Requests per minute
}

// DefaultConfig returns default Gemini configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey: apiKey,
		Model:  "gemini-1.5-flash",
		TPM:    32000, // Gemini default TPM
		RPM:    60,    // Gemini default RPM
	}
}

// NewProvider creates a new Gemini provider
func NewProvider(ctx context.Context, config *Config) (*Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(config.Model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema()

	return &Provider{
		client:      client,
		model:       model,
		modelName:   config.Model,
		rateLimiter: ratelimit.NewLimiter(config.TPM, config.RPM),
	}, nil
}

// Close closes the Gemini client
func (p *Provider) Close() error {
	return p.client.Close()
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "gemini"
}

// Generate opens a streaming generation request. The concatenated fragments
// form a JSON object honoring the declared response schema.
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

	iter := p.model.GenerateContentStream(ctx, genai.Text(prompt))
	return &stream{iter: iter}, nil
}

type stream struct {
	iter *genai.GenerateContentResponseIterator
}

// Next returns the next non-empty text fragment, or io.EOF when the stream
// has ended.
func (s *stream) Next() (string, error) {
	for {
		resp, err := s.iter.Next()
		if err == iterator.Done {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		fragment := textOf(resp)
		if fragment != "" {
			return fragment, nil
		}
	}
}

func (s *stream) Close() {}

func textOf(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	return out
}

// responseSchema converts the provider-neutral schema descriptor into the
// genai native form.
func responseSchema() *genai.Schema {
	return schemaFromMap(translator.ResponseSchema())
}

func schemaFromMap(m map[string]any) *genai.Schema {
	s := &genai.Schema{}

	switch m["type"] {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "string":
		s.Type = genai.TypeString
	}

	if desc, ok := m["description"].(string); ok {
		s.Description = desc
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, sub := range props {
			if subMap, ok := sub.(map[string]any); ok {
				s.Properties[name] = schemaFromMap(subMap)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = schemaFromMap(items)
	}
	if required, ok := m["required"].([]string); ok {
		s.Required = required
	}

	return s
}
