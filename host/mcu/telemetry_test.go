package mcu

import "testing"

func TestParseSample(t *testing.T) {
	s, err := ParseSample("tick=5000 count=61250 uptime_us=5000490\r\n")
	if err != nil {
		t.Fatalf("ParseSample failed: %v", err)
	}
	if s.Ticks != 5000 || s.Count != 61250 || s.UptimeUS != 5000490 {
		t.Errorf("Unexpected sample: %+v", s)
	}
}

func TestParseSampleIgnoresUnknownFields(t *testing.T) {
	s, err := ParseSample("tick=1 count=2 uptime_us=3 temp=41")
	if err != nil {
		t.Fatalf("ParseSample failed: %v", err)
	}
	if s.Ticks != 1 {
		t.Errorf("Unexpected sample: %+v", s)
	}
}

func TestParseSampleErrors(t *testing.T) {
	lines := []string{
		"",
		"tick=1 count=2",             // missing uptime
		"tick=x count=2 uptime_us=3", // non-numeric
		"garbage line",
	}
	for _, line := range lines {
		if _, err := ParseSample(line); err == nil {
			t.Errorf("Expected error for %q", line)
		}
	}
}

func TestMonitorDetectsDroppedTicks(t *testing.T) {
	m := &Monitor{TickFreqHz: 1000}

	if _, ok := m.Observe(TickSample{Ticks: 1000}); !ok {
		t.Error("First sample should establish the baseline")
	}
	if elapsed, ok := m.Observe(TickSample{Ticks: 2000}); !ok || elapsed != 1000 {
		t.Errorf("Expected clean 1000-tick step, got %d ok=%v", elapsed, ok)
	}
	if elapsed, ok := m.Observe(TickSample{Ticks: 2900}); ok || elapsed != 900 {
		t.Errorf("Expected anomaly at 900 ticks, got %d ok=%v", elapsed, ok)
	}
}

func TestMonitorHandlesTickWraparound(t *testing.T) {
	m := &Monitor{TickFreqHz: 1000}
	start := uint32(0xFFFFFE0C)
	m.Observe(TickSample{Ticks: start})
	if elapsed, ok := m.Observe(TickSample{Ticks: start + 1000}); !ok || elapsed != 1000 {
		t.Errorf("Unsigned wraparound mishandled: %d ok=%v", elapsed, ok)
	}
}
