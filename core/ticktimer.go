package core

// TickHandler is the callback invoked once per tick interrupt.
// It runs in interrupt context (or the polled equivalent) and must not block.
type TickHandler func()

// RunState tracks where a tick timer is in its lifecycle
type RunState uint8

const (
	// Unconfigured means Setup has never succeeded
	Unconfigured RunState = iota
	// Configured means Setup succeeded but the counter has never started
	Configured
	// Running means the counter is counting and interrupts are armed
	Running
	// Stopped means the counter was running and has been halted by Disable
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// TickTimer is the abstract periodic-interrupt source the kernel time base
// runs on. Platform-specific implementations handle actual hardware control.
//
// Setup, Enable, Disable and the Get* queries run in the owner's normal
// execution context; AcknowledgeIRQ and the handler run in interrupt context.
// The owner must serialize Enable/Disable against interrupt delivery; the
// timer performs no internal locking.
type TickTimer interface {
	// Setup configures the timer for freq tick interrupts per second and
	// stores handler for later interrupt dispatch. It programs the reload
	// interval and interrupt priority but must not start the counter or
	// generate interrupts. On error the hardware is left untouched.
	// Calling Setup while Running is rejected with ErrInvalidState;
	// reconfiguring while Configured or Stopped is allowed and discards
	// any latched pending tick.
	Setup(freq uint32, handler TickHandler) error

	// Enable starts the counter. If a tick was latched while stopped,
	// the interrupt is re-armed (forced pending) before counting resumes,
	// so no tick is lost across a Disable/Enable cycle.
	Enable() error

	// Disable halts the counter. An unserviced pending tick is captured in
	// a software latch instead of firing while the timer is stopped.
	Disable() error

	// AcknowledgeIRQ clears the hardware interrupt condition after the
	// handler processed one tick. Safe to call when nothing is pending.
	AcknowledgeIRQ() error

	// GetIRQn returns the interrupt line identifier for this timer.
	GetIRQn() int

	// GetClock returns the rate the counter advances at, in Hz.
	GetClock() uint32

	// GetInterval returns the number of counter increments between
	// consecutive tick boundaries.
	GetInterval() uint32

	// GetCount returns the up-counting position within the current tick,
	// in [0, GetInterval()), regardless of the hardware count direction.
	GetCount() uint32

	// GetOverflow reports whether a tick boundary has been crossed and not
	// yet serviced. The time base uses it to correct its tick estimate
	// while interrupt delivery is deferred.
	GetOverflow() bool
}

// Global singleton used by core code.
var tickTimer TickTimer

// SetTickTimer is called by target-specific code to register its timer.
func SetTickTimer(t TickTimer) {
	tickTimer = t
}

// MustTickTimer returns the configured timer or panics if missing.
func MustTickTimer() TickTimer {
	if tickTimer == nil {
		panic("tick timer not configured")
	}
	return tickTimer
}
