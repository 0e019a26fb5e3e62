package input

import "testing"

// TestChanSourceEmit verifies delivery order and the non-blocking drop
// on a full buffer.
func TestChanSourceEmit(t *testing.T) {
	s := NewChanSource(2)

	if !s.Emit(Event{Kind: HoldStart}) || !s.Emit(Event{Kind: CycleVerdict}) {
		t.Fatal("Emit rejected with free buffer")
	}
	if s.Emit(Event{Kind: HoldStop}) {
		t.Fatal("Emit accepted past the buffer")
	}

	if e := <-s.Events(); e.Kind != HoldStart {
		t.Errorf("first event = %v, want HoldStart", e.Kind)
	}
	if e := <-s.Events(); e.Kind != CycleVerdict {
		t.Errorf("second event = %v, want CycleVerdict", e.Kind)
	}
}

// TestChanSourceClose verifies consumers observe the shutdown.
func TestChanSourceClose(t *testing.T) {
	s := NewChanSource(1)
	s.Close()

	if _, ok := <-s.Events(); ok {
		t.Error("closed source delivered an event")
	}
}

// TestNullSourceNeverDelivers verifies the nil channel blocks a select
// case forever instead of firing.
func TestNullSourceNeverDelivers(t *testing.T) {
	var src Source = NullSource{}

	select {
	case <-src.Events():
		t.Error("NullSource delivered an event")
	default:
	}
}
