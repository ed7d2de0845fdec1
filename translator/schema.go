package translator

// FieldTranslatedText is the response field the partial extractor scans for.
const FieldTranslatedText = "translatedText"

// ResponseSchema returns the JSON-schema descriptor every generation provider
// submits alongside the prompt. Required: translatedText, explanation,
// slangUsed (entries require term/meaning/context), vibe. Optional:
// transliteration, detectedLanguage.
//
// The map form is provider-neutral; each provider translates it into its
// SDK's native structured-output representation.
func ResponseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translatedText": map[string]any{
				"type":        "string",
				"description": "The translated text in the requested style",
			},
			"transliteration": map[string]any{
				"type":        "string",
				"description": "Latin-script transliteration when the target script is not Latin",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short explanation of word choices and register",
			},
			"slangUsed": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":    map[string]any{"type": "string"},
						"meaning": map[string]any{"type": "string"},
						"context": map[string]any{"type": "string"},
					},
					"required": []string{"term", "meaning", "context"},
				},
			},
			"vibe": map[string]any{
				"type":        "string",
				"description": "Free-text label for the tone of the output",
			},
			"detectedLanguage": map[string]any{
				"type":        "string",
				"description": "Detected source language when auto-detection was requested",
			},
		},
		"required": []string{"translatedText", "explanation", "slangUsed", "vibe"},
	}
}
