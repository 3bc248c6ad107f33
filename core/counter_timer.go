package core

// Direction describes which way the hardware count register moves.
type Direction uint8

const (
	// CountDown hardware reloads to interval-1 and counts toward zero
	// (SysTick style)
	CountDown Direction = iota
	// CountUp hardware counts from zero toward interval-1
	CountUp
)

// CounterHW is the narrow register-level surface CounterTimer drives.
// One implementation per timer peripheral; the RP2040 target and the sim
// package both provide one. All methods are non-blocking register accesses.
type CounterHW interface {
	// ClockHz returns the fixed input clock feeding the counter.
	ClockHz() uint32

	// MaxReload returns the largest interval the counter can be programmed
	// with (e.g. 1<<24 for a 24-bit down counter).
	MaxReload() uint32

	// SetInterval programs the counter span between tick boundaries.
	// The backend handles any reload-register off-by-one itself.
	SetInterval(interval uint32)

	// Value returns the raw count register.
	Value() uint32

	// Start and Stop gate the counter and its interrupt generation.
	Start()
	Stop()

	// Pending reports the unserviced tick-boundary flag. ClearPending
	// drops it; ForcePending raises it so the interrupt fires as soon as
	// delivery is possible.
	Pending() bool
	ClearPending()
	ForcePending()

	// IRQn identifies the interrupt line.
	IRQn() int

	// SetPriority assigns the interrupt priority for the line.
	SetPriority(prio uint8)
}

// tickIRQPriority is the priority Setup assigns to the tick interrupt line.
// Lowest urgency: the tick handler must never preempt device interrupts.
const tickIRQPriority = 0xFF

// CounterTimer is the reference TickTimer over a generic periodic counter.
// It keeps the run state and the stopped-while-pending latch in software,
// since peripherals expose "pending" in incompatible ways.
type CounterTimer struct {
	hw      CounterHW
	dir     Direction
	handler TickHandler

	interval uint32
	state    RunState
	latched  bool
}

// NewCounterTimer wraps hw as a TickTimer. dir selects the raw-to-up-count
// conversion used by GetCount.
func NewCounterTimer(hw CounterHW, dir Direction) *CounterTimer {
	return &CounterTimer{hw: hw, dir: dir}
}

func (t *CounterTimer) Setup(freq uint32, handler TickHandler) error {
	if t.state == Running {
		return ErrInvalidState
	}
	if freq == 0 {
		return ErrInvalidFrequency
	}

	clock := t.hw.ClockHz()
	// Round to nearest; 64-bit so clock+freq/2 cannot wrap
	interval := uint32((uint64(clock) + uint64(freq)/2) / uint64(freq))
	if interval == 0 || interval > t.hw.MaxReload() {
		return ErrUnachievableRate
	}

	// Validation done; hardware writes only happen on the success path.
	t.hw.SetInterval(interval)
	t.hw.SetPriority(tickIRQPriority)

	t.interval = interval
	t.handler = handler
	t.latched = false
	t.state = Configured
	return nil
}

func (t *CounterTimer) Enable() error {
	switch t.state {
	case Running:
		return ErrAlreadyRunning
	case Unconfigured:
		return ErrInvalidState
	}

	if t.latched {
		// Replay the tick that came due while stopped before the counter
		// moves again, so it is serviced ahead of any new boundary.
		t.latched = false
		t.hw.ForcePending()
	}
	t.hw.Start()
	t.state = Running
	return nil
}

func (t *CounterTimer) Disable() error {
	if t.state != Running {
		return ErrNotRunning
	}

	t.hw.Stop()
	if t.hw.Pending() {
		// A boundary was crossed but not serviced. Remember it in
		// software so the line stays quiet while stopped.
		t.hw.ClearPending()
		t.latched = true
	}
	t.state = Stopped
	return nil
}

func (t *CounterTimer) AcknowledgeIRQ() error {
	t.hw.ClearPending()
	return nil
}

// OnIRQ services one tick: it runs the configured handler, then acknowledges
// the interrupt. Target code calls this from the vector (or from a poll loop
// when interrupts are masked).
func (t *CounterTimer) OnIRQ() {
	if t.handler != nil {
		t.handler()
	}
	t.AcknowledgeIRQ()
}

func (t *CounterTimer) GetIRQn() int {
	return t.hw.IRQn()
}

func (t *CounterTimer) GetClock() uint32 {
	return t.hw.ClockHz()
}

func (t *CounterTimer) GetInterval() uint32 {
	return t.interval
}

func (t *CounterTimer) GetCount() uint32 {
	if t.interval == 0 {
		return 0
	}
	raw := t.hw.Value()
	if t.dir == CountDown {
		// Down counters run interval-1 .. 0; present them counting up.
		return (t.interval - 1) - raw
	}
	return raw
}

func (t *CounterTimer) GetOverflow() bool {
	// A latched tick is still an unserviced boundary, just one observed
	// while stopped.
	return t.latched || t.hw.Pending()
}

// State exposes the current run state for target code and tests.
func (t *CounterTimer) State() RunState {
	return t.state
}

var _ TickTimer = (*CounterTimer)(nil)
