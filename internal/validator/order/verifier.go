// Package order verifies that maintenance steps within a work order were
// executed in non-decreasing chronological order. The declared workstep
// ordinal is ground truth; the recorded timestamp is the fact audited
// against it.
package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skyline-mro/wpaudit/internal/model"
)

// Verdict is the per-entry outcome.
type Verdict struct {
	WorkOrderID string `json:"work_order_id"`
	Ordinal     int    `json:"ordinal"`
	OrderOK     bool   `json:"order_ok"`
	// Issue names the earlier ordinal(s) this step's timestamp precedes.
	// Empty when OrderOK is true.
	Issue string `json:"issue,omitempty"`
}

// Group status values.
const (
	StatusOK         = "OK"
	StatusViolations = "VIOLATIONS"
)

// GroupSummary is the per-work-order rollup. Status is VIOLATIONS exactly
// when at least one member verdict has OrderOK false.
type GroupSummary struct {
	WorkOrderID string `json:"work_order_id"`
	Status      string `json:"status"`
	Steps       int    `json:"steps"`
	Violations  int    `json:"violations"`
}

// Verifier checks execution order. Timestamp layouts are configuration;
// a zero Verifier is not usable, construct with NewVerifier.
type Verifier struct {
	dateLayouts []string
	timeLayouts []string
}

// NewVerifier returns a verifier accepting the date and time layouts seen
// in work package exports.
func NewVerifier() *Verifier {
	return &Verifier{
		dateLayouts: []string{
			"02.01.2006",
			"2006-01-02",
			"02/01/2006",
			"02-Jan-2006",
			"02-Jan-06",
		},
		timeLayouts: []string{
			"15:04:05",
			"15:04",
			"1504",
		},
	}
}

// VerifyOrder groups entries by work order and audits each group. Groups
// are independent and verified concurrently; rows within one group are
// walked sequentially in declared order because each verdict depends on
// the running maximum established by earlier steps. Verdicts are returned
// grouped, in declared step order; summaries follow first-seen group
// order. The check never fails: unparseable timestamps are excluded from
// the comparison rather than reported as errors.
func (v *Verifier) VerifyOrder(ctx context.Context, entries []model.LogEntry) ([]Verdict, []GroupSummary) {
	groups, keys := groupByWorkOrder(entries)

	verdictsByGroup := make([][]Verdict, len(keys))
	summaries := make([]GroupSummary, len(keys))

	g, _ := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			verdictsByGroup[i], summaries[i] = v.verifyGroup(key, groups[key])
			return nil
		})
	}
	// Group workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	var verdicts []Verdict
	for _, gv := range verdictsByGroup {
		verdicts = append(verdicts, gv...)
	}
	return verdicts, summaries
}

// verifyGroup walks one work order in declared step order, keeping the
// maximum timestamp seen so far and flagging any parseable step that is
// strictly earlier than it.
func (v *Verifier) verifyGroup(workOrderID string, entries []model.LogEntry) ([]Verdict, GroupSummary) {
	sorted := append([]model.LogEntry(nil), entries...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].WorkstepOrdinal < sorted[b].WorkstepOrdinal
	})

	type seenStep struct {
		ordinal int
		ts      time.Time
	}

	verdicts := make([]Verdict, 0, len(sorted))
	var seen []seenStep
	var runningMax time.Time
	haveMax := false
	violations := 0

	for _, e := range sorted {
		verdict := Verdict{
			WorkOrderID: workOrderID,
			Ordinal:     e.WorkstepOrdinal,
			OrderOK:     true,
		}

		ts, ok := v.parseTimestamp(e)
		if !ok {
			// Cannot disprove order without a timestamp; the step is
			// neither flagged nor allowed to move the running maximum.
			verdicts = append(verdicts, verdict)
			continue
		}

		if haveMax && ts.Before(runningMax) {
			var earlier []string
			for _, s := range seen {
				if ts.Before(s.ts) {
					earlier = append(earlier, fmt.Sprintf("%d", s.ordinal))
				}
			}
			verdict.OrderOK = false
			verdict.Issue = fmt.Sprintf("recorded %s, earlier than step(s) %s",
				ts.Format("2006-01-02 15:04"), strings.Join(earlier, ", "))
			violations++
		} else {
			runningMax = ts
			haveMax = true
		}

		seen = append(seen, seenStep{ordinal: e.WorkstepOrdinal, ts: ts})
		verdicts = append(verdicts, verdict)
	}

	summary := GroupSummary{
		WorkOrderID: workOrderID,
		Status:      StatusOK,
		Steps:       len(sorted),
		Violations:  violations,
	}
	if violations > 0 {
		summary.Status = StatusViolations
	}
	return verdicts, summary
}

// parseTimestamp combines the recorded date and time fields. A missing
// time defaults to midnight; a missing or unparseable date means the
// entry has no usable timestamp.
func (v *Verifier) parseTimestamp(e model.LogEntry) (time.Time, bool) {
	dateStr := strings.TrimSpace(e.ActionDate)
	if dateStr == "" {
		return time.Time{}, false
	}

	var day time.Time
	parsed := false
	for _, layout := range v.dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			day = t
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, false
	}

	timeStr := strings.TrimSpace(e.ActionTime)
	if timeStr == "" {
		return day, true
	}
	for _, layout := range v.timeLayouts {
		if t, err := time.Parse(layout, timeStr); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
		}
	}
	// Date parsed but time did not; the date alone still orders the step.
	return day, true
}

// groupByWorkOrder partitions entries, preserving first-seen group order
// so output is deterministic.
func groupByWorkOrder(entries []model.LogEntry) (map[string][]model.LogEntry, []string) {
	groups := make(map[string][]model.LogEntry)
	var keys []string
	for _, e := range entries {
		if _, ok := groups[e.WorkOrderID]; !ok {
			keys = append(keys, e.WorkOrderID)
		}
		groups[e.WorkOrderID] = append(groups[e.WorkOrderID], e)
	}
	return groups, keys
}
