package dashboard

import (
	"github.com/staffclock/attendance-backend-go/internal/domain/attendance"
	"github.com/staffclock/attendance-backend-go/internal/domain/leave"
)

// AdminSummary is the admin dashboard projection for "today".
type AdminSummary struct {
	Date             string                      `json:"date"`
	PresentCount     int64                       `json:"present_count"`
	LateCount        int64                       `json:"late_count"`
	AbsentCount      int64                       `json:"absent_count"`
	PendingRequests  []leave.RequestResponse     `json:"pending_leave_requests"`
	RecentAttendance []attendance.RecordResponse `json:"recent_attendance"`
}

// EmployeeOverview is the signed-in employee's dashboard projection.
type EmployeeOverview struct {
	TodayAttendance  *attendance.RecordResponse  `json:"today_attendance"`
	RecentAttendance []attendance.RecordResponse `json:"recent_attendance"`
	PendingRequests  []leave.RequestResponse     `json:"pending_leave_requests"`
	LeaveBalance     float64                     `json:"leave_balance"`
}
