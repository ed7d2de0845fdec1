// Package config loads provider configuration for embedding applications
// from a YAML file with environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default model and voice identifiers applied when the file leaves them out.
const (
	DefaultProvider    = "gemini"
	DefaultSpeechVoice = "Kore"
)

// Config captures everything an embedding UI needs to construct providers.
type Config struct {
	// Provider selects the primary generation provider: gemini, openai or
	// anthropic. Remaining configured providers become fallbacks in file
	// order.
	Provider string `yaml:"provider"`

	Gemini    ProviderConfig `yaml:"gemini"`
	OpenAI    ProviderConfig `yaml:"openai"`
	Anthropic ProviderConfig `yaml:"anthropic"`

	Speech SpeechConfig `yaml:"speech"`
}

// ProviderConfig holds the per-provider credentials and model selection.
type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// SpeechConfig selects the speech synthesis voice and model.
type SpeechConfig struct {
	Voice string `yaml:"voice"`
	Model string `yaml:"model"`
}

// Loader loads configuration. Tests can override Lookup to inject
// deterministic environment maps.
type Loader struct {
	Lookup func(string) (string, bool)
}

// Load reads the YAML file at path (skipped when path is empty or missing),
// applies environment overrides, and validates the result.
func (l Loader) Load(path string) (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}

	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}

	overrideString(l.Lookup, "VIBELINGO_PROVIDER", &cfg.Provider)
	overrideString(l.Lookup, "GEMINI_API_KEY", &cfg.Gemini.APIKey)
	overrideString(l.Lookup, "OPENAI_API_KEY", &cfg.OpenAI.APIKey)
	overrideString(l.Lookup, "ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey)
	overrideString(l.Lookup, "VIBELINGO_SPEECH_VOICE", &cfg.Speech.Voice)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate applies defaults and rejects unusable selections.
func (c *Config) Validate() error {
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	switch strings.ToLower(c.Provider) {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = DefaultSpeechVoice
	}
	return nil
}

func overrideString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}
