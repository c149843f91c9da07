// Package rules holds the configurable keyword sets and compiled matchers
// used by the documentation classifier. A RuleSet is plain configuration;
// Compile turns it into an immutable Library of predicates.
package rules

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// RuleSet is the complete, serializable rule configuration. Keyword
// matching is case-insensitive throughout; entries are literal tokens,
// not regular expressions.
type RuleSet struct {
	// ReferenceKeywords are the primary document families (AMM, SRM, ...)
	// that count as a valid reference.
	ReferenceKeywords []string `yaml:"reference_keywords"`

	// LinkingKeywords connect an action to its reference (IAW, REF, PER).
	// They are decorative; validity never requires them.
	LinkingKeywords []string `yaml:"linking_keywords"`

	// SkipPhrases are boilerplate fragments that exempt a row from the
	// reference requirement entirely.
	SkipPhrases []string `yaml:"skip_phrases"`

	// HeaderSkipLabels are procedural section titles whose rows are valid
	// without inspection.
	HeaderSkipLabels []string `yaml:"header_skip_labels"`

	// AutoValidSeqPrefixes mark setup/preparation/access/closeup phases:
	// any SEQ code starting with one of these is valid unconditionally.
	AutoValidSeqPrefixes []string `yaml:"auto_valid_seq_prefixes"`

	// EnforceSeqPrefixes mark closeup-verification steps that always
	// require a reference, regardless of description context.
	EnforceSeqPrefixes []string `yaml:"enforce_seq_prefixes"`
}

// Default returns the built-in rule set mirroring the operator's stock
// configuration. Callers get a fresh copy and may modify it freely.
func Default() RuleSet {
	return RuleSet{
		ReferenceKeywords: []string{
			"AMM", "SRM", "CMM", "EMM", "SOPM", "SWPM",
			"IPD", "FIM", "TSM", "IPC", "SB", "AD",
			"NTO", "MEL", "NEF", "MME", "LMM", "NTM",
			"DWG", "AIPC", "AMMS", "DDG", "VSB", "BSI",
			"FTD", "TIPF", "MNT", "EEL VNA", "EO EOD",
		},
		LinkingKeywords: []string{"IAW", "REF", "PER", "I.A.W"},
		SkipPhrases: []string{
			"GET ACCESS", "GAIN ACCESS", "GAINED ACCESS", "ACCESS GAINED",
			"SPARE ORDERED", "ORDERED SPARE",
			"OBEY ALL", "FOLLOW ALL", "COMPLY WITH",
			"MEASURE AND RECORD", "SET TO INACTIVE",
			"SEE FIGURE", "REFER TO FIGURE",
		},
		HeaderSkipLabels: []string{
			"CLOSE UP", "CLOSEUP",
			"JOB SET UP", "JOB SETUP", "JOBSETUP",
			"OPEN ACCESS", "OPENACCESS",
			"CLOSE ACCESS", "CLOSEACCESS",
			"GENERAL", "JOB SET-UP", "JOB CLOSE-UP",
		},
		AutoValidSeqPrefixes: []string{"1.", "2.", "3.", "10."},
		EnforceSeqPrefixes:   []string{"11."},
	}
}

// Load reads a rule set from a YAML file. Lists left empty in the file
// fall back to the built-in defaults, so a partial override file only
// needs the sets it changes.
func Load(fs afero.Fs, path string) (RuleSet, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	rs := RuleSet{}
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(&rs)

	if err := rs.Validate(); err != nil {
		return RuleSet{}, fmt.Errorf("invalid rules in %s: %w", path, err)
	}
	return rs, nil
}

// applyDefaults fills in default lists for any set the file omitted
func applyDefaults(rs *RuleSet) {
	def := Default()
	if len(rs.ReferenceKeywords) == 0 {
		rs.ReferenceKeywords = def.ReferenceKeywords
	}
	if len(rs.LinkingKeywords) == 0 {
		rs.LinkingKeywords = def.LinkingKeywords
	}
	if len(rs.SkipPhrases) == 0 {
		rs.SkipPhrases = def.SkipPhrases
	}
	if len(rs.HeaderSkipLabels) == 0 {
		rs.HeaderSkipLabels = def.HeaderSkipLabels
	}
	if len(rs.AutoValidSeqPrefixes) == 0 {
		rs.AutoValidSeqPrefixes = def.AutoValidSeqPrefixes
	}
	if len(rs.EnforceSeqPrefixes) == 0 {
		rs.EnforceSeqPrefixes = def.EnforceSeqPrefixes
	}
}

// Validate checks structural soundness of the rule set.
func (rs RuleSet) Validate() error {
	if len(rs.ReferenceKeywords) == 0 {
		return fmt.Errorf("reference_keywords must not be empty")
	}
	for _, set := range [][]string{
		rs.ReferenceKeywords, rs.LinkingKeywords,
		rs.SkipPhrases, rs.HeaderSkipLabels,
	} {
		for _, kw := range set {
			if kw == "" {
				return fmt.Errorf("keyword lists must not contain empty entries")
			}
		}
	}
	for _, p := range append(append([]string{}, rs.AutoValidSeqPrefixes...), rs.EnforceSeqPrefixes...) {
		if p == "" {
			return fmt.Errorf("sequence prefixes must not be empty")
		}
	}
	return nil
}

// Marshal renders the rule set as YAML, used by `wpaudit rules show`.
func (rs RuleSet) Marshal() ([]byte, error) {
	return yaml.Marshal(rs)
}
