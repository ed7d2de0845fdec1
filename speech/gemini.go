package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiSynthesizer calls the Gemini speech-generation endpoint over REST.
// The generative-ai-go SDK exposes no speech surface, so the request is made
// directly against the generativelanguage API.
type GeminiSynthesizer struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiConfig holds Gemini speech configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // override for tests; defaults to the public endpoint
	Client  *http.Client
}

// DefaultGeminiConfig returns default Gemini speech configuration
func DefaultGeminiConfig(apiKey string) *GeminiConfig {
	return &GeminiConfig{
		APIKey: apiKey,
		Model:  "gemini-2.5-flash-preview-tts",
	}
}

// NewGeminiSynthesizer creates a Gemini speech synthesizer
func NewGeminiSynthesizer(config *GeminiConfig) (*GeminiSynthesizer, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	client := config.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &GeminiSynthesizer{
		apiKey:     config.APIKey,
		model:      config.Model,
		baseURL:    baseURL,
		httpClient: client,
	}, nil
}

// Name returns the provider name
func (g *GeminiSynthesizer) Name() string {
	return "gemini"
}

// Synthesize performs one speech-generation call. An HTTP-level failure is
// returned as an error; a well-formed response without an audio payload is
// the valid silent outcome (nil, nil).
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}

	body, err := speechRequestBody(req.Text, voice)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech endpoint returned status %d: %s", resp.StatusCode, payload)
	}

	data := gjson.GetBytes(payload, "candidates.0.content.parts.0.inlineData.data")
	if !data.Exists() || data.String() == "" {
		// No audio payload: silent outcome.
		return nil, nil
	}

	return DecodeBase64PCM(data.String())
}

func speechRequestBody(text, voice string) ([]byte, error) {
	body := "{}"
	var err error
	for _, f := range []struct {
		path  string
		value any
	}{
		{"contents.0.parts.0.text", text},
		{"generationConfig.responseModalities.0", "AUDIO"},
		{"generationConfig.speechConfig.voiceConfig.prebuiltVoiceConfig.voiceName", voice},
	} {
		body, err = sjson.Set(body, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("failed to build speech request body: %w", err)
		}
	}
	return []byte(body), nil
}
