package core

import (
	"sync/atomic"
	"testing"
)

func startTimeBase(t *testing.T, clock, freq uint32) (*TimeBase, *CounterTimer, *fakeCounter) {
	t.Helper()
	hw := newFakeCounter(clock)
	timer := NewCounterTimer(hw, CountDown)
	tb := NewTimeBase(timer)
	if err := tb.Start(freq); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return tb, timer, hw
}

func TestTimeBaseCountsServicedTicks(t *testing.T) {
	tb, timer, hw := startTimeBase(t, 1000000, 1000)
	interval := timer.GetInterval()

	if got := tb.Ticks(); got != 0 {
		t.Fatalf("Expected 0 ticks at start, got %d", got)
	}

	for i := 0; i < 5; i++ {
		hw.advance(interval)
		timer.OnIRQ()
	}
	if got := tb.Ticks(); got != 5 {
		t.Errorf("Expected 5 ticks, got %d", got)
	}
}

func TestTimeBaseEstimatesUnservicedTick(t *testing.T) {
	tb, timer, hw := startTimeBase(t, 1000000, 1000)

	// Boundary crossed but the interrupt not yet delivered: the estimate
	// counts it, the serviced counter does not
	hw.advance(timer.GetInterval())
	if got := tb.Ticks(); got != 1 {
		t.Errorf("Expected estimate 1 with pending tick, got %d", got)
	}

	timer.OnIRQ()
	if got := tb.Ticks(); got != 1 {
		t.Errorf("Expected 1 tick after servicing, got %d", got)
	}
}

func TestTimeBaseSuspendResumeKeepsTick(t *testing.T) {
	tb, timer, hw := startTimeBase(t, 1000000, 1000)

	hw.advance(timer.GetInterval())
	if err := tb.Suspend(); err != nil {
		t.Fatalf("Suspend failed: %v", err)
	}
	if got := tb.Ticks(); got != 1 {
		t.Errorf("Expected suspended estimate 1, got %d", got)
	}
	if err := tb.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	timer.OnIRQ()
	if got := tb.Ticks(); got != 1 {
		t.Errorf("Expected 1 tick after replay, got %d", got)
	}
}

func TestTimeBaseNowMicros(t *testing.T) {
	tb, timer, hw := startTimeBase(t, 1000000, 1000)
	interval := timer.GetInterval() // 1000 clocks = 1ms

	hw.advance(interval)
	timer.OnIRQ()
	hw.advance(250)

	// 1 tick (1000us) + 250 clocks at 1MHz (250us)
	if got := tb.NowMicros(); got != 1250 {
		t.Errorf("Expected 1250us, got %d", got)
	}
}

func TestTimeBaseNowMicrosLongUptime(t *testing.T) {
	tb, _, hw := startTimeBase(t, 100000000, 1000)

	// Near-rollover tick count: 4e9 ticks at 100000 clocks each is 4e14
	// counter clocks, far past where a naive clocks*1e6 wraps uint64
	atomic.StoreUint32(&tb.ticks, 4000000000)
	hw.advance(200)

	// 4e6 seconds plus 200 clocks at 100MHz (2us)
	if got := tb.NowMicros(); got != 4000000000002 {
		t.Errorf("Expected 4000000000002us, got %d", got)
	}
}

func TestTimeBaseStartRejectsBadFrequency(t *testing.T) {
	hw := newFakeCounter(1000000)
	tb := NewTimeBase(NewCounterTimer(hw, CountDown))
	if err := tb.Start(0); err == nil {
		t.Fatal("Expected Start(0) to fail")
	}
}

func TestTimerConversions(t *testing.T) {
	if got := TimerFromUS(1000, 12000000); got != 12000 {
		t.Errorf("TimerFromUS: expected 12000, got %d", got)
	}
	if got := TimerToUS(12000, 12000000); got != 1000 {
		t.Errorf("TimerToUS: expected 1000, got %d", got)
	}
	// Large values must not overflow 32-bit intermediates
	if got := TimerFromUS(4000000, 120000000); got != 480000000 {
		t.Errorf("TimerFromUS: expected 480000000, got %d", got)
	}
}
