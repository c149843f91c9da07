package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Library is a RuleSet compiled into matchers. It is immutable after
// Compile and safe for concurrent use.
type Library struct {
	rules RuleSet

	refKeyword     *regexp.Regexp // primary reference keyword, word-bounded
	linkKeyword    *regexp.Regexp // IAW/REF/PER linking word
	referencedDoc  *regexp.Regexp // "REFERENCED <doc-type>" phrasing
	gluedKeyword   *regexp.Regexp // reference keyword glued to a digit run
	gluedLinking   *regexp.Regexp // linking word glued to a reference keyword
	skipPhrases    []string       // uppercased substring matches
	headerSkip     []string
	autoValidSeq   []string
	enforceSeq     []string
}

// Compile builds a Library from a rule set. It fails only on structurally
// invalid configuration (empty lists, unbuildable patterns).
func Compile(rs RuleSet) (*Library, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	refAlt := keywordAlternation(rs.ReferenceKeywords)
	linkAlt := keywordAlternation(rs.LinkingKeywords)

	refKeyword, err := regexp.Compile(`(?i)\b(?:` + refAlt + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile reference keywords: %w", err)
	}
	linkKeyword, err := regexp.Compile(`(?i)\b(?:` + linkAlt + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile linking keywords: %w", err)
	}
	referencedDoc, err := regexp.Compile(`(?i)\bREFERENCED\s+(?:` + refAlt + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile referenced pattern: %w", err)
	}
	gluedKeyword, err := regexp.Compile(`(?i)\b(` + refAlt + `)(\d)`)
	if err != nil {
		return nil, fmt.Errorf("compile glued keyword pattern: %w", err)
	}
	// No trailing boundary: the keyword may itself be glued to a digit
	// run (REFAMM52), which the next normalization pass splits.
	gluedLinking, err := regexp.Compile(`(?i)\b(` + linkAlt + `)(` + refAlt + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile glued linking pattern: %w", err)
	}

	return &Library{
		rules:         rs,
		refKeyword:    refKeyword,
		linkKeyword:   linkKeyword,
		referencedDoc: referencedDoc,
		gluedKeyword:  gluedKeyword,
		gluedLinking:  gluedLinking,
		skipPhrases:   upperAll(rs.SkipPhrases),
		headerSkip:    upperAll(rs.HeaderSkipLabels),
		autoValidSeq:  append([]string(nil), rs.AutoValidSeqPrefixes...),
		enforceSeq:    append([]string(nil), rs.EnforceSeqPrefixes...),
	}, nil
}

// MustCompile compiles the default rule set and panics on failure. The
// default set is covered by tests, so a panic here means a programming
// error, not bad user input.
func MustCompile(rs RuleSet) *Library {
	lib, err := Compile(rs)
	if err != nil {
		panic(err)
	}
	return lib
}

// RuleSet returns a copy of the configuration the library was built from.
func (l *Library) RuleSet() RuleSet {
	return l.rules
}

// HasPrimaryReference reports whether text cites a primary document
// family (AMM, SRM, ...) as a standalone word.
func (l *Library) HasPrimaryReference(text string) bool {
	if text == "" {
		return false
	}
	return l.refKeyword.MatchString(text)
}

// HasLinkingKeyword reports whether text contains a linking word
// (IAW, REF, PER). Linking words are never required for validity.
func (l *Library) HasLinkingKeyword(text string) bool {
	if text == "" {
		return false
	}
	return l.linkKeyword.MatchString(text)
}

// MatchesSkipPhrase reports whether text contains any configured skip
// phrase, exempting the row from the reference requirement.
func (l *Library) MatchesSkipPhrase(text string) bool {
	if text == "" {
		return false
	}
	up := strings.ToUpper(text)
	for _, phrase := range l.skipPhrases {
		if strings.Contains(up, phrase) {
			return true
		}
	}
	return false
}

// MatchesHeaderSkip reports whether a section header names a procedural
// phase (close up, job set up, access) whose rows are auto-valid.
func (l *Library) MatchesHeaderSkip(header string) bool {
	if header == "" {
		return false
	}
	normalized := strings.Join(strings.Fields(strings.ToUpper(header)), " ")
	for _, label := range l.headerSkip {
		if strings.Contains(normalized, label) {
			return true
		}
	}
	return false
}

// HasReferencedDocPattern reports the "REFERENCED <doc-type>" phrasing,
// where the citation lives in the task header rather than the row.
func (l *Library) HasReferencedDocPattern(text string) bool {
	if text == "" {
		return false
	}
	return l.referencedDoc.MatchString(text)
}

// IsAutoValidSequence reports whether a SEQ code falls in a phase that is
// valid without content inspection.
func (l *Library) IsAutoValidSequence(seq string) bool {
	return matchesPrefix(seq, l.autoValidSeq)
}

// IsEnforcedSequence reports whether a SEQ code marks a closeup
// verification step, which always requires a reference.
func (l *Library) IsEnforcedSequence(seq string) bool {
	return matchesPrefix(seq, l.enforceSeq)
}

func matchesPrefix(seq string, prefixes []string) bool {
	s := strings.TrimSpace(seq)
	if s == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// keywordAlternation builds a regexp alternation from literal keywords,
// longest first so multi-word entries win over their prefixes.
func keywordAlternation(keywords []string) string {
	sorted := append([]string(nil), keywords...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	quoted := make([]string, len(sorted))
	for i, kw := range sorted {
		quoted[i] = regexp.QuoteMeta(kw)
	}
	return strings.Join(quoted, "|")
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}
