// Package model defines the shared value types passed between the table
// layer and the validation engines.
package model

// LogEntry is one maintenance action line from a work package export.
// All fields except Text are optional; absent columns map to empty values.
// Entries are owned by the caller and never mutated by the validators.
type LogEntry struct {
	Text               string // free-text action description
	SequenceCode       string // dotted numeric SEQ code, e.g. "4.2"
	HeaderText         string // section header the action belongs to
	DescriptionContext string // sibling DES field used for context checks
	WorkOrderID        string
	WorkstepOrdinal    int
	ActionDate         string // as recorded in the export, e.g. "03.01.2025"
	ActionTime         string // e.g. "14:05"
}

// HasTimestamp reports whether the entry carries any recorded action date.
// A date alone is enough; a missing time defaults to midnight.
func (e LogEntry) HasTimestamp() bool {
	return e.ActionDate != ""
}
