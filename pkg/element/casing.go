package element

import (
	"encoding/json"
	"strings"
	"unicode"
)

// DashToCamel converts dash-cased-text to dashCasedText. Names without a
// dash are returned unchanged.
func DashToCamel(dash string) string {
	if !strings.Contains(dash, "-") {
		return dash
	}

	lower := strings.ToLower(dash)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c == '-' && i+1 < len(lower) && isASCIILetter(lower[i+1]) {
			b.WriteByte(lower[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CamelToDash converts camelCasedText to camel-cased-text. A leading
// uppercase letter produces a leading dash.
func CamelToDash(camel string) string {
	var b strings.Builder
	b.Grow(len(camel) + 4)
	for _, r := range camel {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidJSON reports whether s is a complete JSON value.
func IsValidJSON(s string) bool {
	return json.Valid([]byte(s))
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z'
}
