package shift

import "errors"

// Shift domain errors
var (
	// State-conflict errors
	ErrAlreadyClockedIn  = errors.New("shift already has a clock-in recorded")
	ErrAlreadyClockedOut = errors.New("shift already has a clock-out recorded")
	ErrNotClockedIn      = errors.New("shift has no clock-in recorded yet")

	// Authorization errors
	ErrNotShiftWorker   = errors.New("only the assigned worker can perform this action")
	ErrNotShiftEmployer = errors.New("only the owning employer can perform this action")

	// General errors
	ErrShiftNotFound = errors.New("shift not found")
)
