package translator

import (
	"fmt"
	"strings"
)

const (
	formalBlock = `STYLE: Formal register.
- Use polite, professional phrasing appropriate for business or academic settings
- Avoid slang, contractions, and colloquialisms entirely
- Prefer complete, grammatically conventional sentences`

	casualBlock = `STYLE: Casual register.
- Translate the way a native speaker would text a close friend
- Use current slang, contractions, and informal particles where natural
- Match the energy of the input; do not formalize it`

	mixedCodeBlock = `STYLE: Mixed-code register.
- Blend the target language with English the way bilingual speakers code-switch in everyday speech
- Keep loanwords and English fillers that a real speaker would leave untranslated
- The result should read like authentic code-switching, not a literal mix`

	correctionBlock = `Before translating, silently fix obvious misspellings and typos in the
input without changing its meaning or tone. Never refuse the input; if part of
it cannot be translated, carry it over unchanged. Respond with JSON only.`
)

// BuildPrompt builds the single directive string sent as model input for a
// translation request. It is pure and deterministic: the same inputs always
// produce the same directive.
//
// When sourceLanguage is SourceAuto the directive asks the model to detect
// the source language and report it in the detectedLanguage output field;
// otherwise the source language is named and the field is not requested.
func BuildPrompt(text, sourceLanguage, targetLanguage string, style StyleMode) string {
	var b strings.Builder

	target := LanguageName(targetLanguage)

	if sourceLanguage == SourceAuto {
		fmt.Fprintf(&b, "Translate the following text to %s. Detect the source language yourself and report it in the detectedLanguage field.\n\n", target)
	} else {
		fmt.Fprintf(&b, "Translate the following text from %s to %s.\n\n", LanguageName(sourceLanguage), target)
	}

	switch style {
	case StyleFormal:
		b.WriteString(formalBlock)
		b.WriteString("\n\n")
	case StyleCasual:
		b.WriteString(casualBlock)
		b.WriteString("\n\n")
	case StyleMixedCode:
		b.WriteString(mixedCodeBlock)
		b.WriteString("\n\n")
	default:
		// Unrecognized modes get a neutral translation. Should not happen.
	}

	b.WriteString("Alongside the translation, explain your word choices, list any slang you used (term, meaning, context), and label the overall vibe of the output. Include a transliteration when the target script is not Latin.\n\n")

	b.WriteString(correctionBlock)

	fmt.Fprintf(&b, "\n\nText:\n%s", text)

	return b.String()
}
