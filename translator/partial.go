package translator

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ExtractTranslatedText scans buffer, a prefix of the JSON object being
// streamed, for a complete quoted value of the translatedText field. It
// returns the decoded value and true once the closing quote has arrived, and
// ("", false) while the field is still being produced or has not appeared
// yet.
//
// The scan is best-effort and non-strict: it is not a JSON parser and does
// not validate the rest of the object. Incomplete input is the normal case
// (the function runs on every streamed fragment) and never causes a panic.
// Calling it repeatedly on a growing buffer is safe; it keeps no state.
func ExtractTranslatedText(buffer string) (string, bool) {
	key := `"` + FieldTranslatedText + `"`

	i := strings.Index(buffer, key)
	if i < 0 {
		return "", false
	}
	rest := buffer[i+len(key):]

	// Field name must be followed by a colon and an opening quote, with
	// optional whitespace around the colon.
	j := 0
	for j < len(rest) && isJSONSpace(rest[j]) {
		j++
	}
	if j >= len(rest) || rest[j] != ':' {
		return "", false
	}
	j++
	for j < len(rest) && isJSONSpace(rest[j]) {
		j++
	}
	if j >= len(rest) || rest[j] != '"' {
		return "", false
	}
	j++

	// Seek the closing quote. A backslash escapes the following character,
	// so an escaped quote does not terminate the string.
	start := j
	escaped := false
	for ; j < len(rest); j++ {
		if escaped {
			escaped = false
			continue
		}
		switch rest[j] {
		case '\\':
			escaped = true
		case '"':
			return decodeJSONString(rest[start:j]), true
		}
	}

	// No closing quote yet: the field is still streaming in.
	return "", false
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// decodeJSONString decodes the escape sequences of a raw JSON string body
// (the text between the quotes). Unrecognized or truncated escapes are kept
// literally rather than rejected, since the input may be model output that is
// not strictly valid JSON.
func decodeJSONString(raw string) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			r, size, ok := decodeUnicodeEscape(raw[i-1:])
			if !ok {
				b.WriteByte('\\')
				b.WriteByte('u')
				break
			}
			b.WriteRune(r)
			i += size - 2
		default:
			// Unknown escape: keep both characters.
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		}
	}

	return b.String()
}

// decodeUnicodeEscape decodes a \uXXXX sequence at the start of s, pairing a
// leading surrogate with a following \uXXXX when present. It returns the
// rune, the number of bytes consumed, and whether decoding succeeded.
func decodeUnicodeEscape(s string) (rune, int, bool) {
	if len(s) < 6 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 6, true
	}
	if len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		v2, err := strconv.ParseUint(s[8:12], 16, 32)
		if err == nil {
			if combined := utf16.DecodeRune(r, rune(v2)); combined != utf8.RuneError {
				return combined, 12, true
			}
		}
	}
	return utf8.RuneError, 6, true
}
