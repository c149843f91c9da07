package rules

import "regexp"

// Revision detection is a disjunction of independent markers; any single
// match is sufficient. Patterns are fixed rather than configured: they
// describe how revisions are written, not which documents require them.

const monthAbbrev = `(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)`

// dateForms covers the accepted date layouts:
// 03JAN25 / 15-Mar-2025, 01/11/2025, 2024-01-15, and the slashed
// month form AUG 01/2025.
const dateForms = `(?:` +
	`\d{1,2}[\s\-]*` + monthAbbrev + `[\s\-]*\d{2,4}` + `|` +
	monthAbbrev + `[\s\-]*\d{1,2}\s*/?\s*\d{2,4}` + `|` +
	`\d{1,2}/\d{1,2}/\d{2,4}` + `|` +
	`\d{4}-\d{1,2}(?:-\d{1,2})?` +
	`)`

var (
	// REV 156, REV:156, REV.156, REV-156, REV 2024-01
	revNumber = regexp.MustCompile(`(?i)\bREV\s*[:.\-]?\s*\d+(?:[-/]\d+)?\b`)

	// REV R00 and similar letter-prefixed revision codes; a digit is
	// required so REV A-D does not qualify
	revCode = regexp.MustCompile(`(?i)\bREV\s*[:.\-]?\s*[A-Z]\d+\b`)

	// Date-bearing REV: REV AUG 01/2025, REV 01AUG 25, compact REV01AUG25.
	// REV may be glued to the date; REVIEW/REVERSE never match because the
	// trailing letters form no month or digit run.
	revDate = regexp.MustCompile(`(?i)\bREV\s*[:.\-]?\s*` + dateForms)

	// REV DATE: 15 (01-Jan-2024) and bare REV DATE followed by a number
	revDateMarker = regexp.MustCompile(`(?i)\bREV\s*DATE\s*[:.\-\s]*\d+(?:\s*\([^)]+\))?`)

	// ISSUE 002
	issueNumber = regexp.MustCompile(`(?i)\bISSUE\s*[:.\-]?\s*\d+\b`)

	// ISSUED SD 45
	issuedSD = regexp.MustCompile(`(?i)\bISSUED\s+SD\s*[:.\-]?\s*\d+\b`)

	// TAR 2024-0113 and similar tracking identifiers
	tarNumber = regexp.MustCompile(`(?i)\bTAR\b\s*[:#.\-]?\s*[A-Z]*\d[A-Z0-9\-]*\b`)

	// EXP 03JAN25, DEADLINE: 01/11/2025, DUE DATE 15/03/2025
	expiryDate = regexp.MustCompile(`(?i)\b(?:EXP(?:IRY)?|DEADLINE|DUE\s*DATE)\s*[:.\-]?\s*` + dateForms)
)

// HasRevision reports whether text carries any revision indicator:
// a revision number or code, an issue number, an issued-SD or TAR marker,
// or a date-bearing marker (revision, expiry, deadline, due date).
func HasRevision(text string) bool {
	if text == "" {
		return false
	}
	return revNumber.MatchString(text) ||
		revCode.MatchString(text) ||
		revDate.MatchString(text) ||
		revDateMarker.MatchString(text) ||
		issueNumber.MatchString(text) ||
		issuedSD.MatchString(text) ||
		tarNumber.MatchString(text) ||
		expiryDate.MatchString(text)
}
