package models

// State is the lifecycle state of a submitted photo
type State string

// WorkItem lifecycle states. Done and Failed are terminal.
const (
	StatePending State = "pending"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Terminal reports whether no further transitions can occur
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// WorkItem is the per-submitted-file lifecycle record. The batch owns the
// collection; everything handed out to readers is a value copy.
type WorkItem struct {
	ID               string `json:"id"`
	SourceName       string `json:"source_name"`
	State            State  `json:"state"`
	Output           []byte `json:"-"`
	OutputName       string `json:"output_name,omitempty"`
	DisplayTimestamp string `json:"display_timestamp,omitempty"`
	IsFallback       bool   `json:"is_fallback,omitempty"`
	Error            string `json:"error,omitempty"`
}
