package translator

import (
	"context"
	"time"
)

// StyleMode selects the register the translation should be written in.
type StyleMode string

const (
	StyleFormal    StyleMode = "formal"
	StyleCasual    StyleMode = "casual"
	StyleMixedCode StyleMode = "mixedCode"
)

// SourceAuto requests automatic source-language detection.
const SourceAuto = "auto"

// TranslationRequest represents a single translation request.
// Text must be non-empty after trimming; the session rejects it otherwise.
type TranslationRequest struct {
	Text           string
	SourceLanguage string // language code or SourceAuto
	TargetLanguage string
	Style          StyleMode
}

// SlangTerm is one slang expression the model detected in its output,
// kept in the order the model produced it (not deduplicated).
type SlangTerm struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
	Context string `json:"context"`
}

// TranslationResult is the finalized output of a completed session.
// TranslatedText, Explanation and Vibe are always present after successful
// finalization; SlangUsed may be empty but is never nil.
type TranslationResult struct {
	TranslatedText   string        `json:"translatedText"`
	Transliteration  string        `json:"transliteration,omitempty"`
	Explanation      string        `json:"explanation"`
	SlangUsed        []SlangTerm   `json:"slangUsed"`
	Vibe             string        `json:"vibe"`
	DetectedLanguage string        `json:"detectedLanguage,omitempty"`
	Provider         string        `json:"-"`
	Duration         time.Duration `json:"-"`
}

// Stream delivers the incremental text fragments of one generation request.
// Next returns the next non-empty fragment, or io.EOF when the stream ends.
// Fragment order matches the order the endpoint produced them.
type Stream interface {
	Next() (string, error)
	Close()
}

// Generator opens a streaming generation request for a prompt. The
// concatenation of the returned stream's fragments is a JSON encoding of the
// response schema.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Stream, error)

	// Name returns the provider name.
	Name() string
}
