// Package reference classifies maintenance log entries against the
// documentation-compliance taxonomy: every entry resolves to exactly one
// of four states.
package reference

// State is the classification outcome for one log entry.
type State int

const (
	// StateValid means the entry either carries complete documentation or
	// is exempt from the requirement.
	StateValid State = iota

	// StateMissingReference means a reference was expected but the entry
	// cites no primary document.
	StateMissingReference

	// StateMissingRevision means the entry cites a document but carries
	// no revision indicator.
	StateMissingRevision

	// StateNotApplicable means the entry is blank or explicitly marked
	// N/A and is preserved as-is.
	StateNotApplicable
)

var stateNames = map[State]string{
	StateValid:            "Valid",
	StateMissingReference: "Missing reference",
	StateMissingRevision:  "Missing revision",
	StateNotApplicable:    "N/A",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsFinding reports whether the state represents a documentation defect.
func (s State) IsFinding() bool {
	return s == StateMissingReference || s == StateMissingRevision
}
