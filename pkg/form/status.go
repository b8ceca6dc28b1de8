package form

// Status is the validity state of a control.
type Status string

const (
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusPending  Status = "pending"
	StatusDisabled Status = "disabled"
)

func (s Status) String() string { return string(s) }

// EventKind tells value notifications from status notifications.
type EventKind string

const (
	EventValueChanged  EventKind = "value_changed"
	EventStatusChanged EventKind = "status_changed"
)

// Event is delivered to listeners registered with OnChange.
// Path is relative to the tree root; the root itself has an empty path.
type Event struct {
	Kind   EventKind
	Path   string
	Value  any
	Status Status
}
