//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"tickhal/core"
)

// Cortex-M SysTick and system-control registers used by the tick timer
const (
	systBase    = 0xE000E010
	systCSR     = systBase + 0x00 // Control and status
	systRVR     = systBase + 0x04 // Reload value (24-bit)
	systCVR     = systBase + 0x08 // Current value; any write clears to 0
	scbSHPR3    = 0xE000ED20      // System handler priority (SysTick in 31:24)
	systIRQn    = 15              // SysTick exception number
	reloadMask  = 0xFFFFFF
	csrEnable   = 1 << 0
	csrClkSrc   = 1 << 2  // Count the processor clock, not the external ref
	csrCountFlg = 1 << 16 // Set on wrap; cleared by reading CSR
)

var (
	csr   = (*volatile.Register32)(unsafe.Pointer(uintptr(systCSR)))
	rvr   = (*volatile.Register32)(unsafe.Pointer(uintptr(systRVR)))
	cvr   = (*volatile.Register32)(unsafe.Pointer(uintptr(systCVR)))
	shpr3 = (*volatile.Register32)(unsafe.Pointer(uintptr(scbSHPR3)))
)

// SysClockHz is the clk_sys rate feeding SysTick on the RP2040 at the
// default boot clock configuration.
const SysClockHz = 125000000

// SysTickCounter implements core.CounterHW on the Cortex-M SysTick, the
// canonical 24-bit down counter.
//
// COUNTFLAG clears itself on every CSR read, so every method that touches
// CSR folds the flag into the pending bit first; a wrap observed by any
// register access is never lost. TICKINT stays off (ticks are polled, the
// SysTick exception is never taken), which also means the forced pend for
// a replayed tick lives in the same software bit rather than in ICSR,
// where it would vector into the runtime's default handler.
type SysTickCounter struct {
	pending bool
}

func NewSysTickCounter() *SysTickCounter {
	return &SysTickCounter{}
}

func (s *SysTickCounter) ClockHz() uint32   { return SysClockHz }
func (s *SysTickCounter) MaxReload() uint32 { return reloadMask + 1 }
func (s *SysTickCounter) IRQn() int         { return systIRQn }

func (s *SysTickCounter) SetInterval(interval uint32) {
	// RVR holds interval-1: the counter runs RELOAD..0 inclusive
	rvr.Set((interval - 1) & reloadMask)
	cvr.Set(0) // any write zeroes CVR and forces a reload on start
}

func (s *SysTickCounter) Value() uint32 {
	return cvr.Get() & reloadMask
}

func (s *SysTickCounter) Start() {
	s.pollCountflag()
	csr.Set(csr.Get() | csrEnable | csrClkSrc)
}

func (s *SysTickCounter) Stop() {
	// Latch before the read-modify-write below consumes COUNTFLAG, or a
	// boundary crossed just before the stop would vanish.
	s.pollCountflag()
	csr.Set(csr.Get() &^ csrEnable)
}

func (s *SysTickCounter) Pending() bool {
	s.pollCountflag()
	return s.pending
}

func (s *SysTickCounter) ClearPending() {
	s.pollCountflag() // consume the flag so it cannot resurface later
	s.pending = false
}

func (s *SysTickCounter) ForcePending() {
	s.pending = true
}

func (s *SysTickCounter) SetPriority(prio uint8) {
	shpr3.Set(shpr3.Get()&0x00FFFFFF | uint32(prio)<<24)
}

func (s *SysTickCounter) pollCountflag() {
	if csr.Get()&csrCountFlg != 0 {
		s.pending = true
	}
}

// InitTickTimer wires the SysTick-backed timer into core. Called from main
// before the time base starts.
func InitTickTimer() *core.CounterTimer {
	timer := core.NewCounterTimer(NewSysTickCounter(), core.CountDown)
	core.SetTickTimer(timer)
	return timer
}
