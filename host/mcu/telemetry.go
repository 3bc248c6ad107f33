// Package mcu decodes the telemetry a tick-timer board reports over its
// serial console.
package mcu

import (
	"fmt"
	"strconv"
	"strings"
)

// TickSample is one decoded telemetry line from the board.
type TickSample struct {
	// Ticks is the board's tick estimate at report time
	Ticks uint32

	// Count is the sub-tick counter position, in counter clocks
	Count uint32

	// UptimeUS is elapsed time since the tick source started
	UptimeUS uint64
}

// ParseSample decodes a "tick=N count=N uptime_us=N" line.
func ParseSample(line string) (TickSample, error) {
	var s TickSample
	seen := 0

	for _, field := range strings.Fields(strings.TrimSpace(line)) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return TickSample{}, fmt.Errorf("malformed telemetry field %q", field)
		}
		switch key {
		case "tick":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return TickSample{}, fmt.Errorf("bad tick value %q: %w", value, err)
			}
			s.Ticks = uint32(n)
			seen++
		case "count":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return TickSample{}, fmt.Errorf("bad count value %q: %w", value, err)
			}
			s.Count = uint32(n)
			seen++
		case "uptime_us":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return TickSample{}, fmt.Errorf("bad uptime value %q: %w", value, err)
			}
			s.UptimeUS = n
			seen++
		default:
			// Unknown fields are ignored so firmware can add more later
		}
	}

	if seen != 3 {
		return TickSample{}, fmt.Errorf("incomplete telemetry line %q", line)
	}
	return s, nil
}

// Monitor tracks consecutive samples and flags tick-rate anomalies.
type Monitor struct {
	// TickFreqHz is the tick rate the board was configured with
	TickFreqHz uint32

	last    TickSample
	started bool
}

// Observe feeds the next sample and returns how many ticks elapsed since the
// previous one. expected reports whether that matches the report cadence
// (one report per second of board time). The first sample only establishes
// the baseline.
func (m *Monitor) Observe(s TickSample) (elapsed uint32, expected bool) {
	if !m.started {
		m.started = true
		m.last = s
		return 0, true
	}

	elapsed = s.Ticks - m.last.Ticks
	m.last = s
	if m.TickFreqHz == 0 {
		return elapsed, true
	}
	return elapsed, elapsed == m.TickFreqHz
}
