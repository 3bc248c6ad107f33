package core

import "sync/atomic"

// TimeBase is the kernel-side time driver that owns the tick timer. It counts
// serviced ticks and derives elapsed time from the timer's sub-tick counter.
type TimeBase struct {
	timer TickTimer
	freq  uint32

	// ticks counts serviced tick interrupts. Written from interrupt
	// context, read from normal context.
	ticks uint32
}

// NewTimeBase creates a time base over t. The timer is not touched until
// Start.
func NewTimeBase(t TickTimer) *TimeBase {
	return &TimeBase{timer: t}
}

// Start configures the timer for freq ticks per second and starts it.
func (tb *TimeBase) Start(freq uint32) error {
	if err := tb.timer.Setup(freq, tb.onTick); err != nil {
		return err
	}
	tb.freq = freq
	atomic.StoreUint32(&tb.ticks, 0)
	return tb.timer.Enable()
}

// onTick is the tick interrupt handler
func (tb *TimeBase) onTick() {
	atomic.AddUint32(&tb.ticks, 1)
}

// Suspend halts the tick source. A tick that comes due around the stop is
// preserved by the timer and replayed on Resume.
func (tb *TimeBase) Suspend() error {
	return tb.timer.Disable()
}

// Resume restarts the tick source after Suspend.
func (tb *TimeBase) Resume() error {
	return tb.timer.Enable()
}

// Ticks returns the current tick estimate: ticks serviced so far, plus one
// for a boundary that has been crossed but whose interrupt has not been
// delivered yet.
func (tb *TimeBase) Ticks() uint32 {
	n := atomic.LoadUint32(&tb.ticks)
	if tb.timer.GetOverflow() {
		n++
	}
	return n
}

// TickFreq returns the configured tick rate in Hz.
func (tb *TimeBase) TickFreq() uint32 {
	return tb.freq
}

// SubTick returns the counter position inside the current tick, in
// [0, interval) counter clocks.
func (tb *TimeBase) SubTick() uint32 {
	return tb.timer.GetCount()
}

// NowMicros returns elapsed time since Start in microseconds, combining whole
// ticks with the sub-tick counter.
//
// Reading ticks and the counter is not atomic with respect to a tick
// boundary; read the counter first, re-read ticks, and retry if a boundary
// slipped in between. Same shape as the hi/lo rollover re-read on the RP2040
// 64-bit timer.
func (tb *TimeBase) NowMicros() uint64 {
	clock := tb.timer.GetClock()
	interval := tb.timer.GetInterval()
	if clock == 0 || interval == 0 {
		return 0
	}
	for {
		t1 := tb.Ticks()
		sub := tb.timer.GetCount()
		t2 := tb.Ticks()
		if t1 == t2 {
			clocks := uint64(t1)*uint64(interval) + uint64(sub)
			// Convert whole seconds and the remainder separately so
			// clocks*1e6 cannot wrap uint64 on long uptimes
			hz := uint64(clock)
			return clocks/hz*1000000 + clocks%hz*1000000/hz
		}
	}
}

// TimerFromUS converts microseconds to counter clocks at the given rate.
func TimerFromUS(us uint32, clockHz uint32) uint32 {
	return uint32(uint64(us) * uint64(clockHz) / 1000000)
}

// TimerToUS converts counter clocks to microseconds at the given rate.
func TimerToUS(clocks uint32, clockHz uint32) uint32 {
	return uint32(uint64(clocks) * 1000000 / uint64(clockHz))
}
