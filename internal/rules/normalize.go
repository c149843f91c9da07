package rules

import (
	"regexp"
	"strings"
)

// The normalizer repairs the spacing typos that appear constantly in
// hand-typed log entries ("REFAMM52-11-01REV156") so the matchers can see
// token boundaries. It is idempotent, preserves letter case, and removes
// nothing but redundant whitespace.

var (
	// REV:156 / REV.156 -> REV 156
	revPunct = regexp.MustCompile(`(?i)\b(REV)[:.]\s*(\d)`)

	// REV156 at a word start -> REV 156
	revGluedStart = regexp.MustCompile(`(?i)\b(REV)(\d)`)

	// 01REV156, )REV156 -> 01 REV 156
	revGluedMid = regexp.MustCompile(`(?i)([A-Za-z0-9)\]])(REV)(\d)`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Normalize rewrites text so glued tokens are separated: a reference
// keyword fused to a digit run, a linking word fused to a reference
// keyword, and a revision marker fused to its digits. Whitespace runs
// collapse to a single space and the result is trimmed.
func (l *Library) Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := text

	// IAW/REF/PER glued to a document keyword: REFAMM -> REF AMM
	t = l.gluedLinking.ReplaceAllString(t, "$1 $2")

	// Document keyword glued to a number: AMM52-11-01 -> AMM 52-11-01
	t = l.gluedKeyword.ReplaceAllString(t, "$1 $2")

	// Revision marker glued to its digits
	t = revPunct.ReplaceAllString(t, "$1 $2")
	t = revGluedStart.ReplaceAllString(t, "$1 $2")
	t = revGluedMid.ReplaceAllString(t, "$1 $2 $3")

	t = whitespaceRun.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
