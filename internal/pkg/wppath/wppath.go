// Package wppath derives filesystem-safe names from work package values.
package wppath

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is used when a work package value yields no usable name.
const Fallback = "no_wp_found"

// maxNameRunes caps the derived name for filesystem compatibility.
const maxNameRunes = 80

// Sanitize converts a work package value into a name safe to embed in
// output file names. The value is NFKC-normalized, characters invalid in
// file names become underscores, runs collapse to one, and trailing dots
// and spaces are removed. An empty result yields Fallback.
func Sanitize(wp string) string {
	wp = norm.NFKC.String(strings.TrimSpace(wp))

	var b strings.Builder
	for _, r := range wp {
		switch {
		case r == '\\' || r == '/' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	name := b.String()
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.Trim(name, "_")
	name = strings.TrimRight(name, ". ")

	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimRight(string(runes[:maxNameRunes]), "_")
	}

	if name == "" {
		return Fallback
	}
	return name
}

// ReportName builds the output workbook name for a work package,
// e.g. "WP-2025_014_checked.xlsx".
func ReportName(wp string) string {
	return Sanitize(wp) + "_checked.xlsx"
}
