package reference

import (
	"context"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/skyline-mro/wpaudit/internal/model"
	"github.com/skyline-mro/wpaudit/internal/rules"
)

// notApplicable matches entries whose text starts with an N/A-family
// token, optionally followed by explanatory text.
var notApplicable = regexp.MustCompile(`(?i)^(?:N/A|N\.A\.?|NA|NONE)\b`)

// Classifier assigns one State per log entry. It is stateless apart from
// the compiled rule library and safe for concurrent use; classification
// of one entry never depends on another.
type Classifier struct {
	lib *rules.Library
}

// NewClassifier builds a classifier on a compiled rule library.
func NewClassifier(lib *rules.Library) *Classifier {
	return &Classifier{lib: lib}
}

// Classify runs the ordered decision pipeline and returns exactly one
// state. Rules are evaluated in strict priority order and the first match
// wins:
//
//  1. SEQ code in an auto-valid phase (setup/access/closeup)
//  2. Header naming a procedural phase
//  3. Blank or N/A text is preserved
//  4. Skip phrase or cross-reference to another task/order
//  5. Special pattern (REFERENCED doc, NDT report, SB identifier,
//     DATA MODULE TASK)
//  6. Reference presence, enforced only when context expects one
//  7. Revision presence on cited references
//
// The function is total: every input, including empty context fields,
// yields a state and nothing ever fails.
func (c *Classifier) Classify(e model.LogEntry) State {
	if c.lib.IsAutoValidSequence(e.SequenceCode) {
		return StateValid
	}

	if c.lib.MatchesHeaderSkip(e.HeaderText) {
		return StateValid
	}

	text := strings.TrimSpace(e.Text)
	if text == "" || notApplicable.MatchString(text) {
		return StateNotApplicable
	}

	if c.lib.MatchesSkipPhrase(text) || rules.HasCrossReference(text) {
		return StateValid
	}

	cleaned := c.lib.Normalize(text)

	if c.matchesSpecialPattern(cleaned) {
		return StateValid
	}

	if !c.lib.HasPrimaryReference(cleaned) {
		if c.expectsReference(e) {
			return StateMissingReference
		}
		// Nothing in context says this step is reference-bearing.
		return StateValid
	}

	if rules.HasRevision(cleaned) {
		return StateValid
	}
	return StateMissingRevision
}

// matchesSpecialPattern checks the self-sufficient textual forms; each is
// independently enough for validity, revision or not.
func (c *Classifier) matchesSpecialPattern(cleaned string) bool {
	if c.lib.HasReferencedDocPattern(cleaned) {
		return true
	}
	if rules.HasNDTReport(cleaned) {
		return true
	}
	if rules.HasServiceBulletinID(cleaned) {
		// A full SB identifier carries its own issue state. The numbered
		// DATA MODULE TASK form always co-occurs with one, so it needs no
		// separate branch.
		return true
	}
	return false
}

// expectsReference decides whether a row with no primary reference is a
// finding. A reference is expected when the sibling description field
// itself cites documentation, or when the SEQ code marks a closeup
// verification step, which enforces the check regardless of context.
func (c *Classifier) expectsReference(e model.LogEntry) bool {
	if c.lib.IsEnforcedSequence(e.SequenceCode) {
		return true
	}

	des := strings.TrimSpace(e.DescriptionContext)
	if des == "" {
		return false
	}
	cleaned := c.lib.Normalize(des)

	return c.lib.HasPrimaryReference(cleaned) ||
		c.lib.HasReferencedDocPattern(cleaned) ||
		rules.HasDocumentID(cleaned) ||
		rules.HasNDTReport(cleaned) ||
		rules.HasServiceBulletinID(cleaned) ||
		rules.HasDataModuleTask(cleaned)
}

// ClassifyAll classifies entries concurrently and returns states in input
// order. Rows are independent, so the only coordination is slot
// assignment. workers <= 0 uses one worker per CPU.
func (c *Classifier) ClassifyAll(ctx context.Context, entries []model.LogEntry, workers int) ([]State, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	states := make([]State, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range entries {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			states[i] = c.Classify(entries[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return states, nil
}
