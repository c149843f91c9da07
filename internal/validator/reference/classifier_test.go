package reference

import (
	"context"
	"testing"

	"github.com/skyline-mro/wpaudit/internal/model"
	"github.com/skyline-mro/wpaudit/internal/rules"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	lib, err := rules.Compile(rules.Default())
	if err != nil {
		t.Fatalf("compile default rules: %v", err)
	}
	return NewClassifier(lib)
}

func TestClassifySequenceAutoValid(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		seq  string
		text string
		want State
	}{
		{"setup phase ignores content", "1.5", "GARBAGE", StateValid},
		{"preparation phase", "2.1", "NO REFERENCE HERE", StateValid},
		{"access phase", "3.12", "", StateValid},
		{"closeup phase", "10.99", "REMOVED PANEL", StateValid},
		{"non-matching prefix falls through", "4.1", "", StateNotApplicable},
		{"prefix is not a substring match", "100.1", "", StateNotApplicable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(model.LogEntry{Text: tt.text, SequenceCode: tt.seq})
			if got != tt.want {
				t.Errorf("Classify(seq=%q, text=%q) = %v, want %v", tt.seq, tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyHeaderAutoValid(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		header string
		text   string
		want   State
	}{
		{"CLOSE UP", "ANYTHING AT ALL", StateValid},
		{"Job Set Up", "REMOVED PANEL", StateValid},
		{"OPEN ACCESS", "", StateValid},
		{"FUSELAGE REPAIR", "", StateNotApplicable},
	}
	for _, tt := range tests {
		got := c.Classify(model.LogEntry{Text: tt.text, HeaderText: tt.header})
		if got != tt.want {
			t.Errorf("Classify(header=%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestClassifyBlankPreservation(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"N/A", "N/A"},
		{"lowercase n/a", "n/a"},
		{"NA", "NA"},
		{"NONE", "NONE"},
		{"N/A with explanation", "N/A - NOT REQUIRED THIS CHECK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(model.LogEntry{Text: tt.text})
			if got != StateNotApplicable {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, StateNotApplicable)
			}
		})
	}

	// NA as a word prefix must not swallow real actions
	if got := c.Classify(model.LogEntry{Text: "NAMEPLATE REPLACED IAW AMM 52-11-01 REV 156"}); got != StateValid {
		t.Errorf("Classify(NAMEPLATE...) = %v, want %v", got, StateValid)
	}
}

func TestClassifySkipPhrasesAndCrossReferences(t *testing.T) {
	c := newTestClassifier(t)

	valid := []string{
		"GET ACCESS TO PANEL",
		"GAIN ACCESS",
		"SPARE ORDERED",
		"MEASURE AND RECORD FINDINGS",
		"SEE WT 420",
		"COVERED UNDER WO: 1178352",
		"PER EO-2024-118",
	}
	for _, text := range valid {
		if got := c.Classify(model.LogEntry{Text: text}); got != StateValid {
			t.Errorf("Classify(%q) = %v, want %v", text, got, StateValid)
		}
	}
}

func TestClassifySpecialPatterns(t *testing.T) {
	c := newTestClassifier(t)

	// Each form is sufficient on its own, no revision marker needed
	valid := []string{
		"IN ACCORDANCE WITH REFERENCED AMM TASKS",
		"FOLLOW REFERENCED SRM INSTRUCTIONS",
		"REF NDT REPORT NDT02-251067, LEFT SIDE SOB FITTING AT STA STA1449",
		"IAW SB B787-A-21-00-0128-02A-933B-D",
		"REF SB B787-A-21-00-0128-02A-933B-D, DONE, SATIS",
		"IN ACCORDANCE WITH DATA MODULE TASK 2, SB B787-A-21-00-0128-02A-933B-D. DONE, SATIS",
		"PER DATA MODULE TASK 5, SB B737-52-1234-A",
	}
	for _, text := range valid {
		if got := c.Classify(model.LogEntry{Text: text}); got != StateValid {
			t.Errorf("Classify(%q) = %v, want %v", text, got, StateValid)
		}
	}
}

func TestClassifyReferenceAndRevision(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		text string
		des  string
		want State
	}{
		{"reference with revision", "IAW AMM 52-11-01 REV 156", "", StateValid},
		{"issue as revision", "REF SRM 54-21-03 ISSUE 002", "", StateValid},
		{"typos corrected before matching", "REFAMM52-11-01REV156", "", StateValid},
		{"rev with colon", "IAW AMM 52-11-01 REV: 156", "", StateValid},
		{"rev with period", "IAW AMM 52-11-01 REV. 156", "", StateValid},
		{"lowercase entry", "iaw amm 52-11-01 rev 156", "", StateValid},
		{"extra spaces", "IAW   AMM   52-11-01   REV   156", "", StateValid},
		{"reference without revision", "IAW AMM 52-11-01", "", StateMissingRevision},
		{"SRM without revision", "REF SRM 54-21-03", "", StateMissingRevision},
		{"CMM without revision", "PER CMM 32-42-11", "", StateMissingRevision},
		{"DMC plus AMM without revision", "IAW AMM DMC-B787-A-53-01-01-00B-520A-A", "", StateMissingRevision},
		{"no reference, expectant context", "REMOVED PANEL", "IAW AMM 52-11-01 REV 156", StateMissingReference},
		{"no reference, DMC context", "INSPECTED FITTING", "REF DMC-B787-A-53-01-01-00B-520A-A", StateMissingReference},
		{"no reference, no context", "REMOVED PANEL", "", StateValid},
		{"no reference, inert context", "REMOVED PANEL", "GENERAL VISUAL INSPECTION", StateValid},
		{"bare doc id, expectant context", "IAW 52-11-01", "IAW AMM 52-11-01 REV 156", StateMissingReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(model.LogEntry{Text: tt.text, DescriptionContext: tt.des})
			if got != tt.want {
				t.Errorf("Classify(text=%q, des=%q) = %v, want %v", tt.text, tt.des, got, tt.want)
			}
		})
	}
}

func TestClassifyEnforcedSequenceAlwaysChecks(t *testing.T) {
	c := newTestClassifier(t)

	// Closeup-verification steps require a reference even with no context
	got := c.Classify(model.LogEntry{Text: "REMOVED PANEL", SequenceCode: "11.2"})
	if got != StateMissingReference {
		t.Errorf("Classify(seq=11.2, no context) = %v, want %v", got, StateMissingReference)
	}

	// A complete citation still passes on enforced steps
	got = c.Classify(model.LogEntry{Text: "IAW AMM 52-11-01 REV 156", SequenceCode: "11.2"})
	if got != StateValid {
		t.Errorf("Classify(seq=11.2, full citation) = %v, want %v", got, StateValid)
	}
}

func TestClassifyTotality(t *testing.T) {
	c := newTestClassifier(t)

	// Every input resolves to exactly one of the four states; none panics.
	inputs := []model.LogEntry{
		{},
		{Text: "\x00\xff garbage \t\n"},
		{Text: "REV", SequenceCode: "..", HeaderText: "..", DescriptionContext: ".."},
		{Text: "IAW", SequenceCode: "abc", HeaderText: "xyz"},
		{Text: "ALL CAPS NO STRUCTURE WHATSOEVER 123456"},
	}
	for _, e := range inputs {
		got := c.Classify(e)
		switch got {
		case StateValid, StateMissingReference, StateMissingRevision, StateNotApplicable:
		default:
			t.Errorf("Classify(%+v) returned out-of-range state %d", e, got)
		}
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	c := newTestClassifier(t)

	entries := []model.LogEntry{
		{Text: "IAW AMM 52-11-01 REV 156"},
		{Text: "IAW AMM 52-11-01"},
		{Text: "N/A"},
		{Text: "REMOVED PANEL", DescriptionContext: "IAW AMM 52-11-01 REV 156"},
	}
	want := []State{StateValid, StateMissingRevision, StateNotApplicable, StateMissingReference}

	for _, workers := range []int{0, 1, 4} {
		states, err := c.ClassifyAll(context.Background(), entries, workers)
		if err != nil {
			t.Fatalf("ClassifyAll(workers=%d): %v", workers, err)
		}
		if len(states) != len(want) {
			t.Fatalf("ClassifyAll(workers=%d) returned %d states, want %d", workers, len(states), len(want))
		}
		for i := range want {
			if states[i] != want[i] {
				t.Errorf("ClassifyAll(workers=%d)[%d] = %v, want %v", workers, i, states[i], want[i])
			}
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateValid, "Valid"},
		{StateMissingReference, "Missing reference"},
		{StateMissingRevision, "Missing revision"},
		{StateNotApplicable, "N/A"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
