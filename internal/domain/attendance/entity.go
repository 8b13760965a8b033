package attendance

import "time"

// Status classifies a day record by its check-in time.
type Status string

const (
	StatusAbsent  Status = "absent"
	StatusPresent Status = "present"
	StatusLate    Status = "late"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAbsent, StatusPresent, StatusLate:
		return true
	}
	return false
}

// Record is one attendance row per (user, calendar date).
//
// Per-day state machine: NoRecord -> CheckedIn -> [OnBreak -> CheckedIn]
// -> CheckedOut. Each transition is guarded; re-invoking a transition the
// record has already passed is rejected, never silently repeated.
type Record struct {
	ID                string
	UserID            string
	Date              time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	BreakStart        *time.Time
	BreakEnd          *time.Time
	TotalBreakMinutes int
	TotalWorkMinutes  *int
	Status            Status
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / join
	UserName *string
}

// WorkMinutes derives the day's net work time. Returns nil until both
// check-in and check-out exist. Not floored at zero: a break longer than
// the shift yields a negative value, as the stored data says.
func (r *Record) WorkMinutes() *int {
	if r.CheckIn == nil || r.CheckOut == nil {
		return nil
	}
	minutes := int(r.CheckOut.Sub(*r.CheckIn).Minutes()) - r.TotalBreakMinutes
	return &minutes
}

// ClassifyCheckIn returns the status for a check-in at t against the
// expected threshold (same calendar day, time-of-day comparison).
// Strictly after the threshold is late; at or before is present.
func ClassifyCheckIn(t time.Time, expected time.Time) Status {
	threshold := time.Date(t.Year(), t.Month(), t.Day(),
		expected.Hour(), expected.Minute(), expected.Second(), 0, t.Location())
	if t.After(threshold) {
		return StatusLate
	}
	return StatusPresent
}
