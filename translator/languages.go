package translator

// languageNames maps the language codes the UI offers to display names used
// in prompts. Unknown codes fall through as-is.
var languageNames = map[string]string{
	"en":  "English",
	"tl":  "Tagalog",
	"fil": "Filipino",
	"es":  "Spanish",
	"fr":  "French",
	"de":  "German",
	"it":  "Italian",
	"pt":  "Portuguese",
	"ja":  "Japanese",
	"ko":  "Korean",
	"zh":  "Chinese",
	"vi":  "Vietnamese",
	"th":  "Thai",
	"id":  "Indonesian",
	"ms":  "Malay",
	"hi":  "Hindi",
	"ar":  "Arabic",
	"ru":  "Russian",
}

// LanguageName returns the display name for a language code, or the code
// itself when it is not recognized.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
