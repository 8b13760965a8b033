package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// unique (user_id, date) constraint in storage backs the one-record-per-day
// invariant; the ForUpdate variant is the serialization point for the
// check-in/break/check-out read-check-write cycle.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDate returns nil when no record exists for the day.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// GetByUserAndDateForUpdate is GetByUserAndDate holding a row lock for
	// the rest of the transaction.
	GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (*Record, error)

	Update(ctx context.Context, record Record) error

	// History lists the caller's own records, newest date first.
	History(ctx context.Context, userID string, filter HistoryFilter) ([]Record, int64, error)

	// List is the admin view across users, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
