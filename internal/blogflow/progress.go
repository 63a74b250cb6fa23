package blogflow

import "fmt"

// Status is the state of one unit of flow work.
type Status string

const (
	StatusWorking  Status = "working"
	StatusComplete Status = "complete"
	StatusFailed   Status = "failed"
)

// Event is emitted as the flow advances. Index is the zero-based post index
// during the writing phase and -1 during planning.
type Event struct {
	Phase   Phase
	Index   int
	Title   string
	Status  Status
	Message string
}

// Reporter emits flow events through a buffered channel. Emission never
// blocks: when the buffer is full the event is dropped.
type Reporter struct {
	ch chan Event
}

// NewReporter creates a Reporter with a buffer of 64 events.
func NewReporter() *Reporter {
	return &Reporter{ch: make(chan Event, 64)}
}

// Emit sends an event without blocking.
func (r *Reporter) Emit(ev Event) {
	select {
	case r.ch <- ev:
	default:
	}
}

// Subscribe returns the read side of the event channel.
func (r *Reporter) Subscribe() <-chan Event {
	return r.ch
}

// Close closes the event channel.
func (r *Reporter) Close() {
	close(r.ch)
}

// FormatEvent renders an event as a one-line status message.
func FormatEvent(ev Event) string {
	label := ev.Title
	if label == "" {
		label = ev.Phase.String()
	}
	switch ev.Status {
	case StatusWorking:
		return fmt.Sprintf("  ● %s...", label)
	case StatusComplete:
		return fmt.Sprintf("  ✓ %s", label)
	case StatusFailed:
		return fmt.Sprintf("  ✗ %s: %s", label, ev.Message)
	default:
		return fmt.Sprintf("  ? %s", label)
	}
}
