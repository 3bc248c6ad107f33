package core

// Telemetry line format emitted by targets and parsed by the host monitor:
//
//	tick=<ticks> count=<subtick> uptime_us=<microseconds>
//
// Plain text so it survives any serial console; one line per report.

// FormatTelemetry renders one telemetry line (without line ending).
func FormatTelemetry(ticks uint32, count uint32, uptimeUS uint64) string {
	return "tick=" + utoa(uint64(ticks)) +
		" count=" + utoa(uint64(count)) +
		" uptime_us=" + utoa(uptimeUS)
}

// Telemetry reads the current time-base state into one report line.
func Telemetry(tb *TimeBase) string {
	return FormatTelemetry(tb.Ticks(), tb.SubTick(), tb.NowMicros())
}
