package leave

import "time"

type Type string

const (
	TypeSick      Type = "sick"
	TypeVacation  Type = "vacation"
	TypePersonal  Type = "personal"
	TypeEmergency Type = "emergency"
	TypeOther     Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeEmergency, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// LeaveRequest is one leave submission. Status only moves
// pending -> approved or pending -> rejected (both terminal); a pending
// request may instead be deleted by its owner.
type LeaveRequest struct {
	ID         string
	UserID     string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Reason     string
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	AdminNotes *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / join
	UserName     *string
	ApproverName *string
}

func (r *LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}

// TotalDaysBetween counts calendar days in [start, end], inclusive of
// both endpoints.
func TotalDaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether [aStart,aEnd] and [bStart,bEnd] share at least
// one calendar day, bounds inclusive.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
