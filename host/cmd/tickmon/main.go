package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"tickhal/core"
	"tickhal/host/mcu"
	"tickhal/host/serial"
	"tickhal/sim"
)

var (
	device   = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud     = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	freq     = flag.Uint("freq", 1000, "Tick frequency the board runs at (Hz)")
	simulate = flag.Bool("sim", false, "Run against a simulated counter instead of hardware")
	seconds  = flag.Uint("seconds", 10, "How long to monitor (simulated mode)")
)

func main() {
	flag.Parse()

	fmt.Println("tickmon - tick timer monitor")

	if *simulate {
		if err := runSimulated(uint32(*freq), *seconds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runSerial(uint32(*freq)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runSimulated drives the full tick stack against the software counter,
// producing the same telemetry a board would.
func runSimulated(freq uint32, seconds uint) error {
	counter := sim.NewCounter()
	timer := core.NewCounterTimer(counter, core.CountDown)
	tb := core.NewTimeBase(timer)

	if err := tb.Start(freq); err != nil {
		return fmt.Errorf("failed to start time base at %d Hz: %w", freq, err)
	}

	fmt.Printf("Simulated counter: clock=%d Hz interval=%d irq=%d\n",
		timer.GetClock(), timer.GetInterval(), timer.GetIRQn())

	monitor := &mcu.Monitor{TickFreqHz: freq}
	for elapsed := uint(0); elapsed < seconds; elapsed++ {
		// One simulated second, serviced tick by tick
		for i := uint32(0); i < freq; i++ {
			counter.Advance(timer.GetInterval())
			if timer.GetOverflow() {
				timer.OnIRQ()
			}
		}

		line := core.Telemetry(tb)
		sample, err := mcu.ParseSample(line)
		if err != nil {
			return fmt.Errorf("telemetry round-trip failed: %w", err)
		}
		printSample(monitor, sample, line)
		time.Sleep(50 * time.Millisecond) // keep the output readable
	}
	return nil
}

// runSerial tails telemetry lines from a real board.
func runSerial(freq uint32) error {
	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to %s...\n", cfg.Device)
	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	monitor := &mcu.Monitor{TickFreqHz: freq}
	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sample, err := mcu.ParseSample(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping line: %v\n", err)
			continue
		}
		printSample(monitor, sample, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("serial read failed: %w", err)
	}
	return nil
}

func printSample(monitor *mcu.Monitor, sample mcu.TickSample, line string) {
	elapsed, expected := monitor.Observe(sample)
	if expected {
		fmt.Printf("%s (+%d ticks)\n", line, elapsed)
	} else {
		fmt.Printf("%s (+%d ticks, expected %d) TICK ANOMALY\n",
			line, elapsed, monitor.TickFreqHz)
	}
}
