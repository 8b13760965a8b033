package attendance

import "errors"

// Attendance domain errors
var (
	// State machine guards
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrNotCheckedIn        = errors.New("must check in first")
	ErrBreakAlreadyStarted = errors.New("break already started")
	ErrNoBreakStarted      = errors.New("must start break before ending it")
	ErrBreakAlreadyEnded   = errors.New("break already ended")
	ErrAlreadyCheckedOut   = errors.New("already checked out today")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
