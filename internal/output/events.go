// Package output renders the resolved run plan and routes it to the
// requested destination.
package output

// SchemaVersion identifies the plan event schema.
const SchemaVersion = 1

// EventKind discriminates plan event payloads.
type EventKind string

const (
	// EventKindStart opens a plan emission.
	EventKindStart EventKind = "start"
	// EventKindSection carries one named group of plan entries.
	EventKindSection EventKind = "section"
	// EventKindPlan carries the assembled plan document.
	EventKindPlan EventKind = "plan"
	// EventKindNotice carries a diagnostic message for stderr.
	EventKindNotice EventKind = "notice"
	// EventKindDone closes a plan emission.
	EventKindDone EventKind = "done"
)

// Event is one unit of the plan emission stream. Exactly one payload field is
// populated per kind.
type Event struct {
	Version int       `json:"version"`
	Kind    EventKind `json:"kind"`
	Command string    `json:"command,omitempty"`

	Section *SectionEvent `json:"section,omitempty"`
	Plan    *Plan         `json:"plan,omitempty"`
	Notice  *NoticeEvent  `json:"notice,omitempty"`
}

// SectionEvent groups related plan entries under a heading.
type SectionEvent struct {
	Name    string       `json:"name"`
	Entries []EntryEvent `json:"entries,omitempty"`
}

// EntryEvent is a single plan line. Key may be empty for bare list entries;
// Display carries an optional human-readable rendering of Value.
type EntryEvent struct {
	Key     string `json:"key,omitempty"`
	Value   string `json:"value"`
	Display string `json:"display,omitempty"`
}

// NoticeEvent is a diagnostic message routed to stderr rather than the plan body.
type NoticeEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}
