package translator

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Finalize parses the fully accumulated buffer as the response schema. All
// four required fields must be present with the right primitive shape, and
// every slangUsed entry must carry term, meaning and context. Any violation
// fails the whole parse with KindParseError; there are no partial successes.
func Finalize(buffer string) (*TranslationResult, error) {
	trimmed := strings.TrimSpace(buffer)
	if trimmed == "" {
		return nil, failure(KindEmptyResponse, fmt.Errorf("stream completed with no content"))
	}

	if !gjson.Valid(trimmed) {
		return nil, failure(KindParseError, fmt.Errorf("accumulated response is not valid JSON"))
	}

	root := gjson.Parse(trimmed)
	if !root.IsObject() {
		return nil, failure(KindParseError, fmt.Errorf("accumulated response is not a JSON object"))
	}

	result := &TranslationResult{SlangUsed: []SlangTerm{}}

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"translatedText", &result.TranslatedText},
		{"explanation", &result.Explanation},
		{"vibe", &result.Vibe},
	} {
		v := root.Get(f.name)
		if !v.Exists() {
			return nil, failure(KindParseError, fmt.Errorf("missing required field %q", f.name))
		}
		if v.Type != gjson.String {
			return nil, failure(KindParseError, fmt.Errorf("field %q is not a string", f.name))
		}
		*f.dst = v.String()
	}

	slang := root.Get("slangUsed")
	if !slang.Exists() || !slang.IsArray() {
		return nil, failure(KindParseError, fmt.Errorf("field \"slangUsed\" is missing or not an array"))
	}
	var entryErr error
	slang.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			entryErr = fmt.Errorf("slangUsed entry is not an object")
			return false
		}
		term := entry.Get("term")
		meaning := entry.Get("meaning")
		context := entry.Get("context")
		for name, v := range map[string]gjson.Result{"term": term, "meaning": meaning, "context": context} {
			if !v.Exists() || v.Type != gjson.String {
				entryErr = fmt.Errorf("slangUsed entry missing string field %q", name)
				return false
			}
		}
		result.SlangUsed = append(result.SlangUsed, SlangTerm{
			Term:    term.String(),
			Meaning: meaning.String(),
			Context: context.String(),
		})
		return true
	})
	if entryErr != nil {
		return nil, failure(KindParseError, entryErr)
	}

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"transliteration", &result.Transliteration},
		{"detectedLanguage", &result.DetectedLanguage},
	} {
		v := root.Get(f.name)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.String {
			return nil, failure(KindParseError, fmt.Errorf("field %q is not a string", f.name))
		}
		*f.dst = v.String()
	}

	return result, nil
}
