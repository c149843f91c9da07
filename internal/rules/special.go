package rules

import "regexp"

// Special patterns are self-sufficient textual forms: any one of them
// satisfies the documentation requirement without a separate revision
// marker. They are fixed patterns, independent of the configured keyword
// lists (the "REFERENCED <doc-type>" form, which does depend on the
// configured document families, lives on Library instead).

var (
	// NDT REPORT NDT02-251067 and similar report identifiers
	ndtReport = regexp.MustCompile(`(?i)\bNDT\s*REPORT\s*[:#]?\s*[A-Z]*\d[A-Z0-9\-]*\b`)

	// Service bulletin with a full structured identifier, e.g.
	// SB B787-A-21-00-0128-02A-933B-D or SB B737-52-1234-A. The
	// identifier carries its own issue state, so no revision is needed.
	sbFullNumber = regexp.MustCompile(`(?i)\bSB[\s:]+[A-Z0-9]+(?:-[A-Z0-9]+){3,}\b`)

	// DATA MODULE TASK 2
	dataModuleTask = regexp.MustCompile(`(?i)\bDATA\s+MODULE\s+TASK\s*[:#]?\s*\d+\b`)

	// DATA MODULE TASK without a number still signals a document
	// reference when deciding whether a row is expected to carry one
	dataModuleTaskText = regexp.MustCompile(`(?i)\bDATA\s+MODULE\s+TASK\b`)

	// Cross-references to another work task, work order, or engineering
	// order: WT 420, WO: 1178352, EO-2024-118
	workTaskRef = regexp.MustCompile(`(?i)\b(?:WT|WO)\s*[:#]?\s*\d+\b`)
	engOrderRef = regexp.MustCompile(`(?i)\bEO[\s:\-]+[A-Z]*\d[A-Z0-9\-]*\b`)

	// DMC identifiers, e.g. DMC-B787-A-53-01-01-00B-520A-A. A DMC alone
	// names a data module but not its document family, so it only counts
	// as context, never as a primary reference.
	dmcIdentifier = regexp.MustCompile(`(?i)\bDMC[\s\-]?[A-Z0-9]+(?:-[A-Z0-9]+)+\b`)

	// Airframe-style document codes, e.g. B787-A-52-09-01-00A-280A-A
	airframeDocCode = regexp.MustCompile(`(?i)\bB7[0-9]{2}-[A-Z0-9]+(?:-[A-Z0-9]+){2,}\b`)

	// Bare ATA chapter-section-subject identifiers, e.g. 52-11-01
	ataDocID = regexp.MustCompile(`\b\d{2}-\d{2}-\d{2}\b`)
)

// HasNDTReport reports an NDT report marker followed by an alphanumeric
// report identifier.
func HasNDTReport(text string) bool {
	if text == "" {
		return false
	}
	return ndtReport.MatchString(text)
}

// HasServiceBulletinID reports a service bulletin token followed by a
// multi-segment structured identifier.
func HasServiceBulletinID(text string) bool {
	if text == "" {
		return false
	}
	return sbFullNumber.MatchString(text)
}

// HasDataModuleTask reports a numbered "DATA MODULE TASK <n>" phrase.
func HasDataModuleTask(text string) bool {
	if text == "" {
		return false
	}
	return dataModuleTask.MatchString(text)
}

// HasCrossReference reports a pointer to another work task, work order,
// or engineering order.
func HasCrossReference(text string) bool {
	if text == "" {
		return false
	}
	return workTaskRef.MatchString(text) || engOrderRef.MatchString(text)
}

// HasDocumentID reports any structured document identifier: a DMC, an
// airframe document code, a bare ATA id, or an unnumbered DATA MODULE
// TASK phrase. These establish that a reference exists in context but do
// not identify the document family, so they never satisfy the primary
// reference requirement on their own.
func HasDocumentID(text string) bool {
	if text == "" {
		return false
	}
	return dmcIdentifier.MatchString(text) ||
		airframeDocCode.MatchString(text) ||
		ataDocID.MatchString(text) ||
		dataModuleTaskText.MatchString(text)
}
