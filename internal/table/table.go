// Package table provides the row/column abstraction over work package
// exports. It knows how AMOS-style exports name their columns and maps
// rows to model.LogEntry values; any missing optional column is treated
// as absent, never as an error.
package table

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/skyline-mro/wpaudit/internal/model"
)

// Canonical column names with their discovery candidates. Matching is
// case-insensitive; the text/header columns additionally accept any
// header containing the canonical name, because exports frequently
// prefix or suffix them.
const (
	ColText       = "wo_text_action.text"
	ColHeader     = "wo_text_action.header"
	ColSeq        = "SEQ"
	ColDes        = "DES"
	ColWP         = "WP"
	ColWorkOrder  = "WO"
	ColWorkstep   = "WORKSTEP"
	ColActionDate = "ACTION_DATE"
	ColActionTime = "ACTION_TIME"
)

// Table is an in-memory sheet: a header row plus data rows. Ragged rows
// are tolerated; missing cells read as empty strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Read loads a table from a CSV or XLSX file, dispatching on extension.
func Read(fs afero.Fs, path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(fs, path)
	case ".xlsx", ".xlsm":
		return ReadXLSX(fs, path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// Column returns the index of the first header equal (case-insensitive)
// to any candidate, or -1.
func (t *Table) Column(candidates ...string) int {
	for _, cand := range candidates {
		lc := strings.ToLower(strings.TrimSpace(cand))
		for i, h := range t.Headers {
			if strings.ToLower(strings.TrimSpace(h)) == lc {
				return i
			}
		}
	}
	return -1
}

// ColumnLike is Column with a substring fallback, for the long dotted
// column names that exports frequently decorate with prefixes or
// suffixes. Short names like "WO" must use Column: a substring lookup
// would find them inside unrelated headers.
func (t *Table) ColumnLike(candidates ...string) int {
	if idx := t.Column(candidates...); idx >= 0 {
		return idx
	}
	for _, cand := range candidates {
		lc := strings.ToLower(strings.TrimSpace(cand))
		for i, h := range t.Headers {
			if strings.Contains(strings.ToLower(h), lc) {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed cell value, or "" when the row is short or
// the column is absent (idx < 0).
func (t *Table) Cell(row, idx int) string {
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	cells := t.Rows[row]
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// Entries maps every data row to a LogEntry using column discovery. Rows
// keep their sheet order; when no workstep column exists, the sheet order
// itself is the declared execution order.
func (t *Table) Entries() []model.LogEntry {
	textCol := t.ColumnLike(ColText)
	seqCol := t.Column(ColSeq)
	headerCol := t.ColumnLike(ColHeader)
	desCol := t.Column(ColDes)
	woCol := t.Column(ColWorkOrder, "wo_number", "workorder")
	stepCol := t.Column(ColWorkstep, "workstep_no", "step")
	dateCol := t.Column(ColActionDate, "performed_date")
	timeCol := t.Column(ColActionTime, "performed_time")

	entries := make([]model.LogEntry, len(t.Rows))
	for i := range t.Rows {
		ordinal := i + 1
		if raw := t.Cell(i, stepCol); raw != "" {
			if n, ok := parseOrdinal(raw); ok {
				ordinal = n
			}
		}
		entries[i] = model.LogEntry{
			Text:               t.Cell(i, textCol),
			SequenceCode:       t.Cell(i, seqCol),
			HeaderText:         t.Cell(i, headerCol),
			DescriptionContext: t.Cell(i, desCol),
			WorkOrderID:        t.Cell(i, woCol),
			WorkstepOrdinal:    ordinal,
			ActionDate:         t.Cell(i, dateCol),
			ActionTime:         t.Cell(i, timeCol),
		}
	}
	return entries
}

// parseOrdinal accepts plain integers and spreadsheet-style floats
// ("4", "4.0") as workstep ordinals.
func parseOrdinal(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// WorkPackage returns the first non-empty WP value, or "" when the
// column is missing or carries only blanks and N/A markers.
func (t *Table) WorkPackage() string {
	wpCol := t.Column(ColWP, "workpackage")
	if wpCol < 0 {
		return ""
	}
	for i := range t.Rows {
		v := t.Cell(i, wpCol)
		switch strings.ToUpper(v) {
		case "", "N/A", "NA", "NONE":
			continue
		}
		return v
	}
	return ""
}

// FilterByActionDate returns a table containing only rows whose action
// date falls within [from, to]. Zero bounds are open-ended. Rows without
// a parseable action date are kept: an absent date is not evidence the
// row is outside the range.
func (t *Table) FilterByActionDate(from, to time.Time, layouts []string) *Table {
	dateCol := t.Column(ColActionDate, "performed_date")
	if dateCol < 0 {
		return t
	}

	out := &Table{Headers: t.Headers}
	for i, row := range t.Rows {
		raw := t.Cell(i, dateCol)
		day, ok := parseAnyDate(raw, layouts)
		if !ok {
			out.Rows = append(out.Rows, row)
			continue
		}
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func parseAnyDate(raw string, layouts []string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// DefaultDateLayouts are the date formats seen in exports, shared with
// the date-range flags on the CLI.
func DefaultDateLayouts() []string {
	return []string{
		"02.01.2006",
		"2006-01-02",
		"02/01/2006",
		"02-Jan-2006",
		"02-Jan-06",
	}
}
