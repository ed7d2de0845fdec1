package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer implements the Synthesizer interface with the OpenAI
// speech endpoint. PCM output is 24 kHz little-endian 16-bit mono, matching
// the Audio contract.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// OpenAIConfig holds OpenAI speech configuration
type OpenAIConfig struct {
	APIKey string
	Model  openai.SpeechModel
	Voice  openai.SpeechVoice
}

// DefaultOpenAIConfig returns default OpenAI speech configuration
func DefaultOpenAIConfig(apiKey string) *OpenAIConfig {
	return &OpenAIConfig{
		APIKey: apiKey,
		Model:  openai.TTSModel1,
		Voice:  openai.VoiceAlloy,
	}
}

// NewOpenAISynthesizer creates an OpenAI speech synthesizer
func NewOpenAISynthesizer(config *OpenAIConfig) *OpenAISynthesizer {
	if config == nil {
		panic("config cannot be nil")
	}

	return &OpenAISynthesizer{
		client: openai.NewClient(config.APIKey),
		model:  config.Model,
		voice:  config.Voice,
	}
}

// Name returns the provider name
func (o *OpenAISynthesizer) Name() string {
	return "openai"
}

// Synthesize performs one speech call and reads the raw PCM payload.
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	voice := o.voice
	if req.Voice != "" {
		voice = openai.SpeechVoice(req.Voice)
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech failed: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech payload: %w", err)
	}
	if len(pcm) == 0 {
		return nil, nil
	}

	return &Audio{PCM: pcm, SampleRate: SampleRate, Channels: 1}, nil
}
