package fallback

import (
	"context"
	"fmt"

	"github.com/vibelingo/vibelingo/translator"
)

// Chain implements a fallback chain of generation providers. Fallback only
// applies to opening the stream; once a provider starts streaming there is no
// mid-stream failover, so a session still makes a single attempt against
// whichever provider accepted the request.
type Chain struct {
	providers []translator.Generator
}

// NewChain creates a new fallback chain with the given providers
// Providers are tried in order: primary → secondary → tertiary → ...
func NewChain(providers ...translator.Generator) *Chain {
	if len(providers) == 0 {
		panic("at least one provider is required")
	}

	return &Chain{
		providers: providers,
	}
}

// Name returns the name of the chain (primary provider name)
func (c *Chain) Name() string {
	return fmt.Sprintf("fallback-chain(%s)", c.providers[0].Name())
}

// Generate attempts to open a stream with fallback to secondary providers on
// failure.
func (c *Chain) Generate(ctx context.Context, prompt string) (translator.Stream, error) {
	var lastErr error

	for i, provider := range c.providers {
		stream, err := provider.Generate(ctx, prompt)
		if err == nil {
			return stream, nil
		}

		lastErr = fmt.Errorf("provider %s (%d/%d) failed: %w",
			provider.Name(), i+1, len(c.providers), err)
	}

	return nil, fmt.Errorf("all providers failed, last error: %w", lastErr)
}
