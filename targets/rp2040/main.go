//go:build rp2040 || rp2350

package main

import (
	"machine"

	"tickhal/core"
)

// TickFreqHz is the kernel tick rate this board runs at
const TickFreqHz = 1000

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	timer := InitTickTimer()
	tb := core.NewTimeBase(timer)
	if err := tb.Start(TickFreqHz); err != nil {
		// No tick source means nothing else can run; signal with the LED
		for {
			led.Set(!led.Get())
			busyDelay(SysClockHz / 10)
		}
	}

	// Polled tick servicing: the main loop drains the pending flag instead
	// of taking the SysTick exception, which is exactly the deferred
	// delivery the time base estimate corrects for.
	lastReport := uint32(0)
	for {
		if timer.GetOverflow() {
			timer.OnIRQ()
		}

		// One telemetry line and an LED toggle per second
		if ticks := tb.Ticks(); ticks-lastReport >= TickFreqHz {
			lastReport = ticks
			led.Set(!led.Get())
			machine.Serial.Write([]byte(core.Telemetry(tb) + "\r\n"))
		}
	}
}

// busyDelay spins for roughly the given number of core cycles
func busyDelay(cycles uint32) {
	for i := uint32(0); i < cycles/4; i++ {
	}
}
