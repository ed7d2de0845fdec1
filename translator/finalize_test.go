package translator_test

import (
	"encoding/json"
	"testing"

	"github.com/vibelingo/vibelingo/translator"
)

func TestFinalize(t *testing.T) {
	buffer := `{
		"translatedText": "kamusta ka, pare",
		"transliteration": "",
		"explanation": "casual greeting with a friendly address term",
		"slangUsed": [
			{"term": "pare", "meaning": "buddy", "context": "address between male friends"}
		],
		"vibe": "warm and familiar",
		"detectedLanguage": "en"
	}`

	result, err := translator.Finalize(buffer)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if result.TranslatedText != "kamusta ka, pare" {
		t.Errorf("unexpected translatedText %q", result.TranslatedText)
	}
	if result.Explanation == "" || result.Vibe == "" {
		t.Error("required fields missing after finalization")
	}
	if result.DetectedLanguage != "en" {
		t.Errorf("unexpected detectedLanguage %q", result.DetectedLanguage)
	}
	if len(result.SlangUsed) != 1 {
		t.Fatalf("expected 1 slang entry, got %d", len(result.SlangUsed))
	}
	if result.SlangUsed[0].Term != "pare" || result.SlangUsed[0].Meaning != "buddy" {
		t.Errorf("unexpected slang entry %+v", result.SlangUsed[0])
	}
}

func TestFinalizeEmptySlang(t *testing.T) {
	buffer := `{"translatedText": "hello", "explanation": "plain", "slangUsed": [], "vibe": "neutral"}`

	result, err := translator.Finalize(buffer)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result.SlangUsed == nil {
		t.Error("slangUsed must never be nil")
	}
	if len(result.SlangUsed) != 0 {
		t.Errorf("expected empty slangUsed, got %d entries", len(result.SlangUsed))
	}
}

func TestFinalizeFailures(t *testing.T) {
	tests := []struct {
		name     string
		buffer   string
		wantKind translator.ErrorKind
	}{
		{
			name:     "empty buffer",
			buffer:   "",
			wantKind: translator.KindEmptyResponse,
		},
		{
			name:     "whitespace only",
			buffer:   "  \n\t ",
			wantKind: translator.KindEmptyResponse,
		},
		{
			name:     "truncated JSON",
			buffer:   `{"translatedText": "hi", "explanation": "x"`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "not an object",
			buffer:   `["hi"]`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "missing vibe",
			buffer:   `{"translatedText": "hi", "explanation": "x", "slangUsed": []}`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "missing translatedText",
			buffer:   `{"explanation": "x", "slangUsed": [], "vibe": "flat"}`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "translatedText wrong type",
			buffer:   `{"translatedText": 5, "explanation": "x", "slangUsed": [], "vibe": "flat"}`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "slangUsed not an array",
			buffer:   `{"translatedText": "hi", "explanation": "x", "slangUsed": "none", "vibe": "flat"}`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "slang entry missing context",
			buffer:   `{"translatedText": "hi", "explanation": "x", "slangUsed": [{"term": "yo", "meaning": "hey"}], "vibe": "flat"}`,
			wantKind: translator.KindParseError,
		},
		{
			name:     "optional field wrong type",
			buffer:   `{"translatedText": "hi", "explanation": "x", "slangUsed": [], "vibe": "flat", "detectedLanguage": 3}`,
			wantKind: translator.KindParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := translator.Finalize(tt.buffer)
			if err == nil {
				t.Fatalf("expected failure, got %+v", result)
			}
			if kind := translator.KindOf(err); kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s (%v)", tt.wantKind, kind, err)
			}
		})
	}
}

// TestFinalizeRoundTrip checks that finalizing the serialization of a result
// reproduces it exactly.
func TestFinalizeRoundTrip(t *testing.T) {
	original := translator.TranslationResult{
		TranslatedText:  "g, sabi niya \"tara\"",
		Transliteration: "",
		Explanation:     "shortened agreement plus quoted invitation",
		SlangUsed: []translator.SlangTerm{
			{Term: "g", Meaning: "game, agreed", Context: "texting shorthand"},
			{Term: "tara", Meaning: "let's go", Context: "casual invitation"},
		},
		Vibe:             "hyped",
		DetectedLanguage: "en",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("failed to serialize fixture: %v", err)
	}

	got, err := translator.Finalize(string(data))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if got.TranslatedText != original.TranslatedText ||
		got.Explanation != original.Explanation ||
		got.Vibe != original.Vibe ||
		got.DetectedLanguage != original.DetectedLanguage ||
		len(got.SlangUsed) != len(original.SlangUsed) {
		t.Errorf("round trip mismatch: %+v vs %+v", got, original)
	}
	for i := range original.SlangUsed {
		if got.SlangUsed[i] != original.SlangUsed[i] {
			t.Errorf("slang entry %d mismatch: %+v vs %+v", i, got.SlangUsed[i], original.SlangUsed[i])
		}
	}
}
