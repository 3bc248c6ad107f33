// Package sim provides a software model of a decrementing periodic counter,
// so the tick-timer contract can be exercised on a development host without
// timer hardware.
package sim

import "tickhal/core"

// Default hardware parameters: a 24-bit down counter on a 100 MHz clock,
// the shape of a Cortex-M SysTick fed by the core clock.
const (
	DefaultClockHz   = 100000000
	DefaultMaxReload = 1 << 24
	DefaultIRQn      = 15
)

// Counter implements core.CounterHW entirely in software. Time advances only
// when the owner calls Advance, so tests and the host monitor control the
// clock explicitly.
type Counter struct {
	clockHz   uint32
	maxReload uint32
	irqn      int

	interval uint32
	value    uint32
	running  bool
	pending  bool
	priority uint8
}

// NewCounter returns a counter with the default SysTick-like parameters.
func NewCounter() *Counter {
	return &Counter{
		clockHz:   DefaultClockHz,
		maxReload: DefaultMaxReload,
		irqn:      DefaultIRQn,
	}
}

// NewCounterWithClock returns a counter driven by a clockHz input clock.
func NewCounterWithClock(clockHz uint32) *Counter {
	c := NewCounter()
	c.clockHz = clockHz
	return c
}

func (c *Counter) ClockHz() uint32   { return c.clockHz }
func (c *Counter) MaxReload() uint32 { return c.maxReload }
func (c *Counter) IRQn() int         { return c.irqn }

func (c *Counter) SetInterval(interval uint32) {
	c.interval = interval
	c.value = interval - 1
}

func (c *Counter) Value() uint32 { return c.value }

func (c *Counter) Start() { c.running = true }
func (c *Counter) Stop()  { c.running = false }

func (c *Counter) Pending() bool { return c.pending }
func (c *Counter) ClearPending() { c.pending = false }
func (c *Counter) ForcePending() { c.pending = true }

func (c *Counter) SetPriority(prio uint8) { c.priority = prio }

// Priority returns the interrupt priority configured by Setup.
func (c *Counter) Priority() uint8 { return c.priority }

// Running reports whether the counter is currently gated on.
func (c *Counter) Running() bool { return c.running }

// Advance steps the model by n input-clock cycles. Each wrap of the count
// register raises the pending flag; a stopped counter does not move.
func (c *Counter) Advance(n uint32) {
	if !c.running || c.interval == 0 {
		return
	}
	// Modular arithmetic instead of stepping, to stay cheap for large n.
	// A wrap occurred iff more cycles elapsed than were left on the count.
	if n > c.value {
		c.pending = true
	}
	steps := n % c.interval
	if steps > c.value {
		c.value = c.interval - (steps - c.value)
	} else {
		c.value -= steps
	}
}

// AdvanceMicros steps the model by us microseconds of simulated time.
func (c *Counter) AdvanceMicros(us uint32) {
	c.Advance(core.TimerFromUS(us, c.clockHz))
}

var _ core.CounterHW = (*Counter)(nil)
