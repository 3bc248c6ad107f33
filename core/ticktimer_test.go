package core

import "testing"

func TestTickTimerRegistration(t *testing.T) {
	defer SetTickTimer(nil)

	timer := NewCounterTimer(newFakeCounter(1000000), CountDown)
	SetTickTimer(timer)
	if MustTickTimer() != TickTimer(timer) {
		t.Error("MustTickTimer returned a different timer")
	}
}

func TestMustTickTimerPanicsUnregistered(t *testing.T) {
	defer SetTickTimer(nil)
	SetTickTimer(nil)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic with no timer registered")
		}
	}()
	MustTickTimer()
}

func TestRunStateString(t *testing.T) {
	states := map[RunState]string{
		Unconfigured: "unconfigured",
		Configured:   "configured",
		Running:      "running",
		Stopped:      "stopped",
		RunState(99): "unknown",
	}
	for s, want := range states {
		if got := s.String(); got != want {
			t.Errorf("RunState(%d).String() = %q, want %q", s, got, want)
		}
	}
}
