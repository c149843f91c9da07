// Package report aggregates per-row results into run statistics and
// persists a logbook of completed runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/skyline-mro/wpaudit/internal/validator/order"
	"github.com/skyline-mro/wpaudit/internal/validator/reference"
)

// Stats is the rollup for one processed work package.
type Stats struct {
	WorkPackage      string  `json:"work_package"`
	Rows             int     `json:"rows"`
	Valid            int     `json:"valid"`
	NotApplicable    int     `json:"not_applicable"`
	MissingReference int     `json:"missing_reference"`
	MissingRevision  int     `json:"missing_revision"`
	OrderViolations  int     `json:"order_violations"`
	WorkOrders       int     `json:"work_orders"`
	ErrorRate        float64 `json:"error_rate"`
}

// Collect builds stats from classification states and order results.
func Collect(workPackage string, states []reference.State, verdicts []order.Verdict, summaries []order.GroupSummary) Stats {
	s := Stats{WorkPackage: workPackage, Rows: len(states)}
	for _, st := range states {
		switch st {
		case reference.StateValid:
			s.Valid++
		case reference.StateNotApplicable:
			s.NotApplicable++
		case reference.StateMissingReference:
			s.MissingReference++
		case reference.StateMissingRevision:
			s.MissingRevision++
		}
	}
	for _, sum := range summaries {
		s.WorkOrders++
		s.OrderViolations += sum.Violations
	}
	if s.Rows > 0 {
		s.ErrorRate = float64(s.MissingReference+s.MissingRevision) / float64(s.Rows) * 100
	}
	return s
}

// Findings is the total number of documentation defects in the run.
func (s Stats) Findings() int {
	return s.MissingReference + s.MissingRevision + s.OrderViolations
}

// Reconcile verifies that every row landed in exactly one category.
// A mismatch means an uncategorized state slipped through and the run
// output cannot be trusted.
func (s Stats) Reconcile() error {
	counted := s.Valid + s.NotApplicable + s.MissingReference + s.MissingRevision
	if counted != s.Rows {
		return fmt.Errorf("category counts sum to %d for %d rows", counted, s.Rows)
	}
	return nil
}

// WriteText prints the run summary in the fixed single-line-per-fact
// format the rest of the tooling greps for.
func (s Stats) WriteText(w io.Writer) {
	fmt.Fprintf(w, "WP: %s\n", s.WorkPackage)
	fmt.Fprintf(w, "OK: valid=%d n/a=%d\n", s.Valid, s.NotApplicable)
	if s.MissingReference > 0 {
		fmt.Fprintf(w, "ERROR: missing reference rows=%d\n", s.MissingReference)
	}
	if s.MissingRevision > 0 {
		fmt.Fprintf(w, "ERROR: missing revision rows=%d\n", s.MissingRevision)
	}
	if s.OrderViolations > 0 {
		fmt.Fprintf(w, "ERROR: out-of-order steps=%d\n", s.OrderViolations)
	}
	fmt.Fprintf(w, "SUMMARY: rows=%d work_orders=%d findings=%d error_rate=%.1f%%\n",
		s.Rows, s.WorkOrders, s.Findings(), s.ErrorRate)
}

// WriteJSON emits the stats for CI integration.
func (s Stats) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
