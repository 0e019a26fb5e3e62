// Package input delivers hotkey events to the detection loop. The
// loop consumes a plain event channel, so any backend that can watch
// keys or buttons (a toolkit grab, an evdev reader, a test) plugs in
// by implementing Source.
package input

// Kind discriminates hotkey events.
type Kind int

const (
	// HoldStart and HoldStop bracket the show-overlay hotkey being
	// held down.
	HoldStart Kind = iota
	HoldStop
	// CycleVerdict advances the suggested action for the shown item.
	CycleVerdict
)

// Event is one hotkey transition.
type Event struct {
	Kind Kind
}

// Source emits hotkey events. The channel closes when the source
// shuts down.
type Source interface {
	Events() <-chan Event
}

// ChanSource is a Source fed by explicit Emit calls. UI backends and
// tests push events through it.
type ChanSource struct {
	ch chan Event
}

// NewChanSource creates a source with the given buffer size.
func NewChanSource(buf int) *ChanSource {
	return &ChanSource{ch: make(chan Event, buf)}
}

// Events returns the event channel.
func (s *ChanSource) Events() <-chan Event {
	return s.ch
}

// Emit delivers an event without blocking. It reports false when the
// buffer is full and the event was dropped.
func (s *ChanSource) Emit(e Event) bool {
	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}

// Close shuts the source down.
func (s *ChanSource) Close() {
	close(s.ch)
}

// NullSource never emits. It backs always-on setups where no hotkey
// is configured.
type NullSource struct{}

// Events returns a channel that never delivers.
func (NullSource) Events() <-chan Event {
	return nil
}
