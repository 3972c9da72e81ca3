package triage

type EventKind string

const (
	// EventStateChanged follows every applied navigation.
	EventStateChanged EventKind = "state_changed"
	// EventStatusWriteFailed reports a status write the session moved past.
	EventStatusWriteFailed EventKind = "status_write_failed"
)

type Event struct {
	Kind           EventKind
	ProcessedJobID int64
	Status         string
	Err            error
	Snapshot       Snapshot
}
