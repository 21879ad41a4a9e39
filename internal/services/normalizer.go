package services

import (
	"regexp"
	"strings"
)

var typographicReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"•", "-", // bullet
	"→", "->",
)

var nonLatin1Re = regexp.MustCompile(`[^\x{00}-\x{FF}]+`)

// NormalizeText maps typographic punctuation to ASCII and then drops every
// rune above U+00FF, so the result is always encodable as Latin-1.
func NormalizeText(text string) string {
	text = typographicReplacer.Replace(text)
	return nonLatin1Re.ReplaceAllString(text, "")
}
