package core

import "errors"

var (
	// ErrInvalidFrequency is returned by Setup when freq is zero
	ErrInvalidFrequency = errors.New("tick frequency must be greater than zero")

	// ErrUnachievableRate is returned by Setup when the derived reload value
	// does not fit the hardware counter width
	ErrUnachievableRate = errors.New("tick interval exceeds counter range")

	// ErrInvalidState is returned when an operation is invoked from a run
	// state that does not permit it (e.g. Enable before Setup)
	ErrInvalidState = errors.New("operation not permitted in current timer state")

	// ErrAlreadyRunning is returned by Enable while the counter is running
	ErrAlreadyRunning = errors.New("tick timer already running")

	// ErrNotRunning is returned by Disable while the counter is not running
	ErrNotRunning = errors.New("tick timer not running")
)
