package dashboard

import (
	"context"
	"time"

	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
)

// StatusCounts holds today's attendance tally by status.
type StatusCounts struct {
	Present int64
	Late    int64
	Total   int64
}

type DashboardRepository interface {
	CountAttendanceByStatus(ctx context.Context, date time.Time) (StatusCounts, error)
	RecentAttendance(ctx context.Context, limit int) ([]attendance.Record, error)
	RecentAttendanceByUser(ctx context.Context, userID string, limit int) ([]attendance.Record, error)
	PendingLeaveRequests(ctx context.Context) ([]leave.LeaveRequest, error)
	PendingLeaveRequestsByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error)
}
